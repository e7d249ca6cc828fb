// Package domain holds the orderbook bounded context's own view of a book:
// a mutable, delta-applicable snapshot keyed by venue+symbol.
package domain

import "github.com/karb/arbitrage-engine/business/venue/domain"

// Snapshot is a point-in-time, delta-updatable orderbook for one venue/symbol.
type Snapshot struct {
	Symbol   string
	Venue    string
	Bids     []domain.PriceLevel
	Asks     []domain.PriceLevel
	Sequence int64
}

// Clone returns a deep-enough copy for safe hand-off outside the manager's lock.
func (s *Snapshot) Clone() *Snapshot {
	bids := make([]domain.PriceLevel, len(s.Bids))
	copy(bids, s.Bids)
	asks := make([]domain.PriceLevel, len(s.Asks))
	copy(asks, s.Asks)
	return &Snapshot{
		Symbol:   s.Symbol,
		Venue:    s.Venue,
		Bids:     bids,
		Asks:     asks,
		Sequence: s.Sequence,
	}
}
