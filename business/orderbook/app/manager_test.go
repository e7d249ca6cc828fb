package app

import (
	"testing"

	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/shopspring/decimal"
)

func level(price, qty string) venuedomain.PriceLevel {
	return venuedomain.PriceLevel{Price: decimal.RequireFromString(price), Quantity: decimal.RequireFromString(qty)}
}

func sampleBook(symbol string, sequence int64) *venuedomain.OrderBook {
	return &venuedomain.OrderBook{
		Symbol:   symbol,
		Venue:    "venue-a",
		Bids:     []venuedomain.PriceLevel{level("99", "1"), level("100", "1")},
		Asks:     []venuedomain.PriceLevel{level("102", "1"), level("101", "1")},
		Sequence: sequence,
	}
}

func TestLoadSnapshotSortsBidsDescendingAndAsksAscending(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	if err := m.LoadSnapshot(sampleBook("KRW-BTC", 1)); err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}

	snap := m.Snapshot()
	if !snap.Bids[0].Price.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected highest bid first, got %s", snap.Bids[0].Price)
	}
	if !snap.Asks[0].Price.Equal(decimal.RequireFromString("101")) {
		t.Fatalf("expected lowest ask first, got %s", snap.Asks[0].Price)
	}
}

func TestLoadSnapshotRejectsSymbolMismatch(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	err := m.LoadSnapshot(sampleBook("KRW-ETH", 1))
	if err == nil {
		t.Fatal("expected a symbol mismatch error")
	}
	if apperror.GetCode(err) != apperror.CodeSymbolMismatch {
		t.Fatalf("expected CodeSymbolMismatch, got %v", err)
	}
}

func TestApplyDeltaBeforeSnapshotFails(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	err := m.ApplyDelta(venuedomain.Delta{Symbol: "KRW-BTC", Bids: []venuedomain.PriceLevel{level("100", "1")}})
	if apperror.GetCode(err) != apperror.CodeNotInitialized {
		t.Fatalf("expected CodeNotInitialized, got %v", err)
	}
}

func TestApplyDeltaDiscardsStaleSequence(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	if err := m.LoadSnapshot(sampleBook("KRW-BTC", 10)); err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}

	err := m.ApplyDelta(venuedomain.Delta{
		Symbol:   "KRW-BTC",
		Sequence: 5,
		Bids:     []venuedomain.PriceLevel{level("200", "5")},
	})
	if apperror.GetCode(err) != apperror.CodeStaleDelta {
		t.Fatalf("expected CodeStaleDelta, got %v", err)
	}

	snap := m.Snapshot()
	for _, b := range snap.Bids {
		if b.Price.Equal(decimal.RequireFromString("200")) {
			t.Fatal("stale delta must not have been applied")
		}
	}
}

func TestApplyDeltaReplacesAndDeletesAndInsertsLevels(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	if err := m.LoadSnapshot(sampleBook("KRW-BTC", 1)); err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}

	err := m.ApplyDelta(venuedomain.Delta{
		Symbol:   "KRW-BTC",
		Sequence: 2,
		Bids: []venuedomain.PriceLevel{
			level("100", "5"),  // replace existing
			level("99", "0"),   // delete existing
			level("105", "2"),  // insert new, becomes new best bid
		},
	})
	if err != nil {
		t.Fatalf("ApplyDelta returned error: %v", err)
	}

	snap := m.Snapshot()
	if len(snap.Bids) != 2 {
		t.Fatalf("expected 2 bids after delta, got %d", len(snap.Bids))
	}
	if !snap.Bids[0].Price.Equal(decimal.RequireFromString("105")) {
		t.Fatalf("expected 105 to be the new best bid, got %s", snap.Bids[0].Price)
	}
	if !snap.Bids[1].Quantity.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("expected level at 100 to have replaced quantity 5, got %s", snap.Bids[1].Quantity)
	}
	if snap.Sequence != 2 {
		t.Fatalf("expected sequence to advance to 2, got %d", snap.Sequence)
	}
}

func TestAsOrderBookReturnsNilBeforeSnapshotLoaded(t *testing.T) {
	m := NewManager("venue-a", "KRW-BTC")
	if m.AsOrderBook() != nil {
		t.Fatal("expected nil order book before any snapshot is loaded")
	}
}
