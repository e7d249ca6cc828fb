// Package domain holds the strategy bounded context's pure value types: the
// configuration a spread calculation runs under and the signal it produces.
package domain

import "github.com/shopspring/decimal"

// ArbitrageDirection names which venue is bought on and which is sold on.
type ArbitrageDirection string

const (
	// SellOnA buys on venue B and sells on venue A.
	SellOnA ArbitrageDirection = "sell_on_a"
	// SellOnB buys on venue A and sells on venue B.
	SellOnB ArbitrageDirection = "sell_on_b"
)

// Config holds the parameters a spread calculation runs under.
type Config struct {
	MinProfitRate decimal.Decimal
	MaxVolume     decimal.Decimal
	FeeA          decimal.Decimal
	FeeB          decimal.Decimal
}

// Signal describes one profitable arbitrage opportunity found between two
// venues' best bid/ask.
type Signal struct {
	Direction  ArbitrageDirection
	BuyVenue   string
	SellVenue  string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Volume     decimal.Decimal
	SpreadRate decimal.Decimal
}
