// Package app holds the orderbook bounded context's use cases: maintaining
// a live, delta-updated snapshot per venue/symbol and streaming it in from
// each venue's feed.
package app

import (
	"sort"
	"sync"

	obdomain "github.com/karb/arbitrage-engine/business/orderbook/domain"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
)

// Manager owns one venue/symbol's live orderbook snapshot and applies
// incremental deltas to it under a single mutex. Every public method is
// safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	symbol   string
	venue    string
	snapshot *obdomain.Snapshot
}

// NewManager builds a Manager with no snapshot loaded yet.
func NewManager(venue, symbol string) *Manager {
	return &Manager{venue: venue, symbol: symbol}
}

// LoadSnapshot replaces the held snapshot wholesale, e.g. from a venue's
// full-book websocket push or a REST bootstrap call.
func (m *Manager) LoadSnapshot(ob *venuedomain.OrderBook) error {
	if ob.Symbol != m.symbol {
		return apperror.New(apperror.CodeSymbolMismatch,
			apperror.WithContext(m.venue+": snapshot for "+ob.Symbol+" routed to "+m.symbol+" manager"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bids := make([]venuedomain.PriceLevel, len(ob.Bids))
	copy(bids, ob.Bids)
	asks := make([]venuedomain.PriceLevel, len(ob.Asks))
	copy(asks, ob.Asks)
	sortBids(bids)
	sortAsks(asks)

	m.snapshot = &obdomain.Snapshot{
		Symbol:   ob.Symbol,
		Venue:    m.venue,
		Bids:     bids,
		Asks:     asks,
		Sequence: ob.Sequence,
	}
	return nil
}

// ApplyDelta merges an incremental update into the held snapshot. A delta
// carrying a non-zero sequence older than the snapshot's own is discarded
// as stale rather than applied out of order.
func (m *Manager) ApplyDelta(delta venuedomain.Delta) error {
	if delta.Symbol != m.symbol {
		return apperror.New(apperror.CodeSymbolMismatch,
			apperror.WithContext(m.venue+": delta for "+delta.Symbol+" routed to "+m.symbol+" manager"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		return apperror.New(apperror.CodeNotInitialized,
			apperror.WithContext(m.venue+"/"+m.symbol+": delta applied before a snapshot was loaded"))
	}

	if delta.Sequence != 0 && delta.Sequence < m.snapshot.Sequence {
		return apperror.New(apperror.CodeStaleDelta,
			apperror.WithContext(m.venue+"/"+m.symbol+": stale delta"))
	}

	m.snapshot.Bids = applyLevels(m.snapshot.Bids, delta.Bids)
	m.snapshot.Asks = applyLevels(m.snapshot.Asks, delta.Asks)
	sortBids(m.snapshot.Bids)
	sortAsks(m.snapshot.Asks)

	if delta.Sequence != 0 {
		m.snapshot.Sequence = delta.Sequence
	}
	return nil
}

// applyLevels merges updates into levels by price: an update matching an
// existing price replaces it (or deletes it, if the update's quantity is
// zero); an update with no matching price is appended only if its quantity
// is non-zero. The caller re-sorts afterward.
func applyLevels(levels []venuedomain.PriceLevel, updates []venuedomain.PriceLevel) []venuedomain.PriceLevel {
	for _, u := range updates {
		idx := -1
		for i, l := range levels {
			if l.Price.Equal(u.Price) {
				idx = i
				break
			}
		}
		switch {
		case idx >= 0 && u.Quantity.IsZero():
			levels = append(levels[:idx], levels[idx+1:]...)
		case idx >= 0:
			levels[idx] = u
		case !u.Quantity.IsZero():
			levels = append(levels, u)
		}
	}
	return levels
}

func sortBids(levels []venuedomain.PriceLevel) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Price.GreaterThan(levels[j].Price)
	})
}

func sortAsks(levels []venuedomain.PriceLevel) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Price.LessThan(levels[j].Price)
	})
}

// Snapshot returns a safe-to-read copy of the current book, or nil if no
// snapshot has been loaded yet.
func (m *Manager) Snapshot() *obdomain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Clone()
}

// AsOrderBook converts the current snapshot to the venue-neutral OrderBook
// shape the strategy layer consumes.
func (m *Manager) AsOrderBook() *venuedomain.OrderBook {
	snap := m.Snapshot()
	if snap == nil {
		return nil
	}
	return &venuedomain.OrderBook{
		Symbol:   snap.Symbol,
		Venue:    snap.Venue,
		Bids:     snap.Bids,
		Asks:     snap.Asks,
		Sequence: snap.Sequence,
	}
}
