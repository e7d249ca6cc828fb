package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karb/arbitrage-engine/business/strategy/domain"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bookWith(symbol string, bidPrice, bidQty, askPrice, askQty string) *venuedomain.OrderBook {
	return &venuedomain.OrderBook{
		Symbol: symbol,
		Bids:   []venuedomain.PriceLevel{{Price: d(bidPrice), Quantity: d(bidQty)}},
		Asks:   []venuedomain.PriceLevel{{Price: d(askPrice), Quantity: d(askQty)}},
	}
}

func baseConfig() domain.Config {
	return domain.Config{
		MinProfitRate: d("0.001"),
		MaxVolume:     d("10"),
		FeeA:          d("0.0005"),
		FeeB:          d("0.0005"),
	}
}

func TestEvaluateFindsSellOnADirection(t *testing.T) {
	s := New(baseConfig())
	// venue A bid high, venue B ask low: buy on B, sell on A
	obA := bookWith("KRW-BTC", "110", "1", "111", "1")
	obB := bookWith("BTC_KRW", "100", "1", "101", "1")

	signal, ok := s.Evaluate(obA, obB)
	if !ok {
		t.Fatal("expected a signal")
	}
	if signal.Direction != domain.SellOnA {
		t.Fatalf("expected SellOnA, got %s", signal.Direction)
	}
	if !signal.BuyPrice.Equal(d("101")) || !signal.SellPrice.Equal(d("110")) {
		t.Fatalf("unexpected prices: buy=%s sell=%s", signal.BuyPrice, signal.SellPrice)
	}
}

func TestEvaluateFindsSellOnBDirection(t *testing.T) {
	s := New(baseConfig())
	obA := bookWith("KRW-BTC", "100", "1", "101", "1")
	obB := bookWith("BTC_KRW", "110", "1", "111", "1")

	signal, ok := s.Evaluate(obA, obB)
	if !ok {
		t.Fatal("expected a signal")
	}
	if signal.Direction != domain.SellOnB {
		t.Fatalf("expected SellOnB, got %s", signal.Direction)
	}
}

func TestEvaluateRejectsSpreadAtExactThreshold(t *testing.T) {
	cfg := domain.Config{MinProfitRate: d("0.001"), MaxVolume: d("10"), FeeA: d("0"), FeeB: d("0")}
	s := New(cfg)
	// spread = (100.1 - 100) / 100 = 0.001, exactly equal to threshold -> rejected
	obA := bookWith("KRW-BTC", "100.1", "1", "200", "1")
	obB := bookWith("BTC_KRW", "99.9", "1", "100", "1")

	_, ok := s.Evaluate(obA, obB)
	if ok {
		t.Fatal("spread exactly at threshold must be rejected, not accepted")
	}
}

func TestEvaluateBreaksTieInFavorOfSellOnA(t *testing.T) {
	cfg := domain.Config{MinProfitRate: d("0.001"), MaxVolume: d("10"), FeeA: d("0"), FeeB: d("0")}
	s := New(cfg)
	// Construct symmetric books so both directions produce the identical spread rate.
	obA := bookWith("KRW-BTC", "110", "1", "100", "1")
	obB := bookWith("BTC_KRW", "110", "1", "100", "1")

	signal, ok := s.Evaluate(obA, obB)
	if !ok {
		t.Fatal("expected a signal")
	}
	if signal.Direction != domain.SellOnA {
		t.Fatalf("tie must favor SellOnA, got %s", signal.Direction)
	}
}

func TestEvaluateCapsVolumeAtMaxVolume(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxVolume = d("0.5")
	s := New(cfg)
	obA := bookWith("KRW-BTC", "110", "5", "111", "5")
	obB := bookWith("BTC_KRW", "100", "5", "101", "5")

	signal, ok := s.Evaluate(obA, obB)
	if !ok {
		t.Fatal("expected a signal")
	}
	if !signal.Volume.Equal(d("0.5")) {
		t.Fatalf("expected volume capped at 0.5, got %s", signal.Volume)
	}
}

func TestEvaluateReturnsFalseWhenEitherBookIsNil(t *testing.T) {
	s := New(baseConfig())
	if _, ok := s.Evaluate(nil, bookWith("BTC_KRW", "100", "1", "101", "1")); ok {
		t.Fatal("expected no signal when a book is nil")
	}
}

func TestEvaluateReturnsFalseWhenNeitherDirectionClears(t *testing.T) {
	s := New(baseConfig())
	obA := bookWith("KRW-BTC", "100", "1", "100.01", "1")
	obB := bookWith("BTC_KRW", "100", "1", "100.01", "1")

	if _, ok := s.Evaluate(obA, obB); ok {
		t.Fatal("expected no signal when neither direction clears fee+min-profit")
	}
}
