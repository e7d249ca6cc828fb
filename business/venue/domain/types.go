// Package domain holds the venue-neutral data shapes exchanged between the
// gateway, parser, wrapper, orderbook and strategy layers. Every price,
// quantity and balance field is a decimal.Decimal, never a binary float.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the side of an order or orderbook level.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// PriceLevel is a single price/quantity point in an orderbook.
type PriceLevel struct {
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Timestamp int64
}

// OrderBook is a full top-of-book (or deeper) snapshot for one venue/symbol.
type OrderBook struct {
	Symbol    string
	Venue     string
	Bids      []PriceLevel // descending by price
	Asks      []PriceLevel // ascending by price
	Sequence  int64
	Timestamp int64
}

// BestBid returns the highest bid, or the zero value and false if empty.
func (ob *OrderBook) BestBid() (PriceLevel, bool) {
	if len(ob.Bids) == 0 {
		return PriceLevel{}, false
	}
	return ob.Bids[0], true
}

// BestAsk returns the lowest ask, or the zero value and false if empty.
func (ob *OrderBook) BestAsk() (PriceLevel, bool) {
	if len(ob.Asks) == 0 {
		return PriceLevel{}, false
	}
	return ob.Asks[0], true
}

// Balance is one currency's balance on one venue.
type Balance struct {
	Venue     string
	Currency  string
	Available decimal.Decimal
	Locked    decimal.Decimal
	Total     decimal.Decimal
}

// OrderType distinguishes market orders denominated in base vs quote units.
// Venue A's "buy" market order is quote-denominated (ord_type=price); its
// "sell" market order and both of venue B's market orders are base-unit.
type OrderType string

const (
	OrderTypeMarketBase  OrderType = "market_base"
	OrderTypeMarketQuote OrderType = "market_quote"
	OrderTypeLimit       OrderType = "limit"
)

// OrderRequest describes an order to place on a venue.
type OrderRequest struct {
	Venue     string
	Symbol    string
	Side      Side
	OrderType OrderType
	Quantity  decimal.Decimal // base units for MarketBase/Limit, quote units for MarketQuote
	Price     decimal.Decimal // only meaningful for Limit
}

// OrderResult is the outcome of placing or querying an order.
type OrderResult struct {
	OrderID        string
	Venue          string
	Symbol         string
	Status         string
	FilledQuantity decimal.Decimal
	AveragePrice   decimal.Decimal // zero value means "not available"
	HasAveragePrice bool
	Raw            map[string]interface{}
}

// Delta describes an incremental change to either or both sides of an orderbook. It
// carries the symbol it was decoded for so a Manager can refuse to apply a
// delta that was somehow routed to the wrong book.
type Delta struct {
	Symbol   string
	Venue    string
	Bids     []PriceLevel
	Asks     []PriceLevel
	Sequence int64
}

// NowMillis returns the current time as milliseconds since epoch, the timestamp
// unit used throughout the orderbook and delta types.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
