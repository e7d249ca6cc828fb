package venueb

import (
	"encoding/json"
	"strings"

	"github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/shopspring/decimal"
)

const venueName = "venue-b"

// Parser decodes this venue's REST/WS payloads into domain types.
type Parser struct{}

// NewParser builds a Parser.
func NewParser() *Parser {
	return &Parser{}
}

type statusEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// assertSuccess returns a ParserError when the venue's own status field
// signals failure. "0000" is the venue's success sentinel; anything else
// (e.g. "5100") is an application-level error the caller must not proceed
// past, even though the HTTP status itself was 200.
func assertSuccess(env statusEnvelope) error {
	if env.Status != "0000" {
		return apperror.New(apperror.CodeParserVenueStatus,
			apperror.WithContext(venueName+": status "+env.Status+": "+env.Message))
	}
	return nil
}

type orderbookLevel struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type orderbookData struct {
	Timestamp      string           `json:"timestamp"`
	OrderCurrency  string           `json:"order_currency"`
	PaymentCurrency string          `json:"payment_currency"`
	Bids           []orderbookLevel `json:"bids"`
	Asks           []orderbookLevel `json:"asks"`
}

// ParseOrderBook decodes the {status, data:{timestamp, bids, asks}} shape.
func (p *Parser) ParseOrderBook(symbol string, raw []byte) (*domain.OrderBook, error) {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode orderbook envelope"))
	}
	if err := assertSuccess(env); err != nil {
		return nil, err
	}

	var data orderbookData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode orderbook data"))
	}

	var ts int64
	if data.Timestamp != "" {
		parsed, err := decimal.NewFromString(data.Timestamp)
		if err == nil {
			ts = parsed.IntPart()
		}
	}

	bids, err := parseLevels(data.Bids, ts)
	if err != nil {
		return nil, err
	}
	asks, err := parseLevels(data.Asks, ts)
	if err != nil {
		return nil, err
	}

	return &domain.OrderBook{
		Symbol:    symbol,
		Venue:     venueName,
		Bids:      bids,
		Asks:      asks,
		Sequence:  ts,
		Timestamp: ts,
	}, nil
}

func parseLevels(levels []orderbookLevel, ts int64) ([]domain.PriceLevel, error) {
	out := make([]domain.PriceLevel, 0, len(levels))
	for _, l := range levels {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		qty, err := decimal.NewFromString(l.Quantity)
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		out = append(out, domain.PriceLevel{Price: price, Quantity: qty, Timestamp: ts})
	}
	return out, nil
}

// ParseBalances decodes the {status, data:{available_btc, in_use_btc,
// total_btc, ...}} shape: every key prefixed "available_" names a
// currency; its locked/total counterparts are looked up by the same
// currency suffix, defaulting to a computed sum when "total_*" is absent.
func (p *Parser) ParseBalances(raw []byte) ([]domain.Balance, error) {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode balance envelope"))
	}
	if err := assertSuccess(env); err != nil {
		return nil, err
	}

	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode balance data"))
	}

	out := make([]domain.Balance, 0)
	for key, value := range data {
		if !strings.HasPrefix(key, "available_") {
			continue
		}
		currency := strings.ToUpper(strings.TrimPrefix(key, "available_"))
		lower := strings.ToLower(currency)

		available, err := decimal.NewFromString(zeroIfEmpty(value))
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}
		locked, err := decimal.NewFromString(zeroIfEmpty(data["in_use_"+lower]))
		if err != nil {
			return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
		}

		total := available.Add(locked)
		if totalStr, ok := data["total_"+lower]; ok && totalStr != "" {
			if parsed, err := decimal.NewFromString(totalStr); err == nil {
				total = parsed
			}
		}

		out = append(out, domain.Balance{
			Venue:     venueName,
			Currency:  currency,
			Available: available,
			Locked:    locked,
			Total:     total,
		})
	}
	return out, nil
}

type orderResultData struct {
	OrderID        interface{} `json:"order_id"`
	OrderCurrency  string      `json:"order_currency"`
	Status         string      `json:"status"`
	ContractAmount string      `json:"contract_amount"`
	ContractPrice  string      `json:"contract_price"`
}

// ParseOrderResult decodes an order placement/status response.
func (p *Parser) ParseOrderResult(raw []byte) (*domain.OrderResult, error) {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode order result envelope"))
	}
	if err := assertSuccess(env); err != nil {
		return nil, err
	}

	var data orderResultData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err),
			apperror.WithContext(venueName+": decode order result data"))
	}

	filled, err := decimal.NewFromString(zeroIfEmpty(data.ContractAmount))
	if err != nil {
		return nil, apperror.New(apperror.CodeParserError, apperror.WithCause(err))
	}

	result := &domain.OrderResult{
		OrderID:        toString(data.OrderID),
		Venue:          venueName,
		Symbol:         data.OrderCurrency,
		Status:         data.Status,
		FilledQuantity: filled,
	}

	if data.ContractPrice != "" && data.ContractPrice != "0" {
		avg, err := decimal.NewFromString(data.ContractPrice)
		if err == nil {
			result.AveragePrice = avg
			result.HasAveragePrice = true
		}
	}

	return result, nil
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
