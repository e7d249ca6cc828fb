// Package app implements the spread-arbitrage calculation: given both
// venues' current best bid/ask, decide whether either direction clears the
// combined fee and minimum-profit threshold.
package app

import (
	"github.com/shopspring/decimal"

	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/business/strategy/domain"
)

// Strategy evaluates the two-leg spread between a fixed pair of venues.
type Strategy struct {
	cfg domain.Config
}

// New builds a Strategy bound to cfg.
func New(cfg domain.Config) *Strategy {
	return &Strategy{cfg: cfg}
}

// Evaluate computes both directions' spread against obA (venue A's book)
// and obB (venue B's book), returning the better of the two if either
// clears the fee+min-profit threshold. Ties are broken in favor of
// SellOnA, the direction evaluated first.
func (s *Strategy) Evaluate(obA, obB *venuedomain.OrderBook) (*domain.Signal, bool) {
	totalFee := s.cfg.FeeA.Add(s.cfg.FeeB)

	sellOnA, okA := s.evaluateDirection(domain.SellOnA, "venue-b", "venue-a", obB, obA, totalFee)
	sellOnB, okB := s.evaluateDirection(domain.SellOnB, "venue-a", "venue-b", obA, obB, totalFee)

	switch {
	case okA && okB:
		if sellOnB.SpreadRate.GreaterThan(sellOnA.SpreadRate) {
			return sellOnB, true
		}
		return sellOnA, true
	case okA:
		return sellOnA, true
	case okB:
		return sellOnB, true
	default:
		return nil, false
	}
}

// evaluateDirection computes the spread for buying on buyBook's best ask
// and selling on sellBook's best bid. It returns ok=false if either side
// of the book is empty or the spread does not clear totalFee+MinProfitRate.
func (s *Strategy) evaluateDirection(dir domain.ArbitrageDirection, buyVenue, sellVenue string, buyBook, sellBook *venuedomain.OrderBook, totalFee decimal.Decimal) (*domain.Signal, bool) {
	if buyBook == nil || sellBook == nil {
		return nil, false
	}

	ask, hasAsk := buyBook.BestAsk()
	bid, hasBid := sellBook.BestBid()
	if !hasAsk || !hasBid {
		return nil, false
	}

	buyPrice := ask.Price
	sellPrice := bid.Price
	if buyPrice.IsZero() {
		return nil, false
	}

	spread := sellPrice.Sub(buyPrice).Div(buyPrice)
	threshold := totalFee.Add(s.cfg.MinProfitRate)
	if spread.LessThanOrEqual(threshold) {
		return nil, false
	}

	availableVolume := decimal.Min(ask.Quantity, bid.Quantity)
	volume := decimal.Min(availableVolume, s.cfg.MaxVolume)
	if volume.IsZero() || volume.IsNegative() {
		return nil, false
	}

	return &domain.Signal{
		Direction:  dir,
		BuyVenue:   buyVenue,
		SellVenue:  sellVenue,
		BuyPrice:   buyPrice,
		SellPrice:  sellPrice,
		Volume:     volume,
		SpreadRate: spread,
	}, true
}
