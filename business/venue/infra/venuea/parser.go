package venuea

import (
	"encoding/json"

	"github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/shopspring/decimal"
)

const venueName = "venue-a"

// Parser decodes this venue's REST/WS payloads into domain types.
type Parser struct{}

// NewParser builds a Parser.
func NewParser() *Parser {
	return &Parser{}
}

type orderbookUnit struct {
	AskPrice string `json:"ask_price"`
	BidPrice string `json:"bid_price"`
	AskSize  string `json:"ask_size"`
	BidSize  string `json:"bid_size"`
}

type orderbookPayload struct {
	Market         string          `json:"market"`
	Timestamp      int64           `json:"timestamp"`
	OrderbookUnits []orderbookUnit `json:"orderbook_units"`
}

// ParseOrderBook accepts either a bare object or an array of them (the
// venue's websocket push is a bare object; its REST response is an array,
// which the wrapper passes through unchanged). For an array, only the first
// element is decoded.
func (p *Parser) ParseOrderBook(symbol string, raw []byte) (*domain.OrderBook, error) {
	var payloads []orderbookPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		var single orderbookPayload
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
				apperror.WithContext(venueName+": decode orderbook"))
		}
		payloads = []orderbookPayload{single}
	}
	if len(payloads) == 0 {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithContext(venueName+": empty orderbook payload"))
	}
	payload := payloads[0]

	bids := make([]domain.PriceLevel, 0, len(payload.OrderbookUnits))
	asks := make([]domain.PriceLevel, 0, len(payload.OrderbookUnits))
	for _, u := range payload.OrderbookUnits {
		bidPrice, err := decimal.NewFromString(u.BidPrice)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		bidSize, err := decimal.NewFromString(u.BidSize)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		askPrice, err := decimal.NewFromString(u.AskPrice)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		askSize, err := decimal.NewFromString(u.AskSize)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		bids = append(bids, domain.PriceLevel{Price: bidPrice, Quantity: bidSize, Timestamp: payload.Timestamp})
		asks = append(asks, domain.PriceLevel{Price: askPrice, Quantity: askSize, Timestamp: payload.Timestamp})
	}

	return &domain.OrderBook{
		Symbol:    symbol,
		Venue:     venueName,
		Bids:      bids,
		Asks:      asks,
		Sequence:  payload.Timestamp,
		Timestamp: payload.Timestamp,
	}, nil
}

type balanceEntry struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
	Locked   string `json:"locked"`
}

// ParseBalances decodes the accounts array. Total is always computed as
// balance+locked rather than trusted from the payload.
func (p *Parser) ParseBalances(raw []byte) ([]domain.Balance, error) {
	var entries []balanceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode balances"))
	}

	out := make([]domain.Balance, 0, len(entries))
	for _, e := range entries {
		available, err := decimal.NewFromString(zeroIfEmpty(e.Balance))
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		locked, err := decimal.NewFromString(zeroIfEmpty(e.Locked))
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		out = append(out, domain.Balance{
			Venue:     venueName,
			Currency:  e.Currency,
			Available: available,
			Locked:    locked,
			Total:     available.Add(locked),
		})
	}
	return out, nil
}

type orderResultPayload struct {
	UUID           string `json:"uuid"`
	Market         string `json:"market"`
	State          string `json:"state"`
	ExecutedVolume string `json:"executed_volume"`
	AvgPrice       string `json:"avg_price"`
}

// ParseOrderResult decodes an order placement/status response.
func (p *Parser) ParseOrderResult(raw []byte) (*domain.OrderResult, error) {
	var payload orderResultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode order result"))
	}

	filled, err := decimal.NewFromString(zeroIfEmpty(payload.ExecutedVolume))
	if err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
	}

	result := &domain.OrderResult{
		OrderID:        payload.UUID,
		Venue:          venueName,
		Symbol:         payload.Market,
		Status:         payload.State,
		FilledQuantity: filled,
	}

	if payload.AvgPrice != "" && payload.AvgPrice != "0" {
		avg, err := decimal.NewFromString(payload.AvgPrice)
		if err == nil {
			result.AveragePrice = avg
			result.HasAveragePrice = true
		}
	}

	return result, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
