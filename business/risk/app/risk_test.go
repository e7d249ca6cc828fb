package app

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	riskdomain "github.com/karb/arbitrage-engine/business/risk/domain"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/logger"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSignal() *strategydomain.Signal {
	return &strategydomain.Signal{
		Direction: strategydomain.SellOnA,
		BuyVenue:  "venue-b",
		SellVenue: "venue-a",
		BuyPrice:  d("100"),
		SellPrice: d("110"),
		Volume:    d("1"),
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	log := logger.NewDefault()
	cb := NewCircuitBreaker(log, 3, 50*time.Millisecond)

	if !cb.Allow() {
		t.Fatal("breaker should start closed")
	}

	for i := 0; i < 3; i++ {
		cb.RecordResult(errors.New("execution failed"))
	}
	if cb.Allow() {
		t.Fatal("breaker should be open after 3 consecutive failures")
	}

	time.Sleep(60 * time.Millisecond)
	if !cb.Allow() {
		t.Fatal("breaker should allow a probe once the cooldown elapses")
	}
}

func TestCircuitBreakerClosesAgainAfterSuccess(t *testing.T) {
	log := logger.NewDefault()
	cb := NewCircuitBreaker(log, 2, 20*time.Millisecond)

	cb.RecordResult(errors.New("e1"))
	cb.RecordResult(errors.New("e2"))
	if cb.Allow() {
		t.Fatal("breaker should be open")
	}

	time.Sleep(30 * time.Millisecond)
	cb.RecordResult(nil)
	if !cb.Allow() {
		t.Fatal("breaker should be closed after a successful probe")
	}
}

func TestPositionLimiterRejectsVolumeOverLimit(t *testing.T) {
	l := NewPositionLimiter(d("0.5"), d("0"))
	err := l.Check(sampleSignal())
	if apperror.GetCode(err) != apperror.CodeRiskRejected {
		t.Fatalf("expected CodeRiskRejected, got %v", err)
	}
}

func TestPositionLimiterRejectsNotionalOverLimit(t *testing.T) {
	l := NewPositionLimiter(d("0"), d("50"))
	// notional = max(100, 110) * 1 = 110 > 50
	err := l.Check(sampleSignal())
	if apperror.GetCode(err) != apperror.CodeRiskRejected {
		t.Fatalf("expected CodeRiskRejected, got %v", err)
	}
}

func TestPositionLimiterAllowsWithinLimits(t *testing.T) {
	l := NewPositionLimiter(d("10"), d("10000"))
	if err := l.Check(sampleSignal()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestBalanceCheckerRejectsInsufficientQuoteForBuyLeg(t *testing.T) {
	bc := NewBalanceChecker(d("0.1"))
	balances := riskdomain.NewBalanceState(
		[]venuedomain.Balance{{Currency: "BTC", Available: d("10")}},
		[]venuedomain.Balance{{Currency: "KRW", Available: d("50")}},
	)
	// buy leg: venue-b must keep 10% of its 50 KRW balance in reserve, so at
	// most 45 KRW can go to the 100 KRW buy leg
	err := bc.Check(sampleSignal(), balances, "KRW-BTC", "BTC_KRW")
	if apperror.GetCode(err) != apperror.CodeRiskRejected {
		t.Fatalf("expected CodeRiskRejected, got %v", err)
	}
}

func TestBalanceCheckerRejectsInsufficientBaseForSellLeg(t *testing.T) {
	bc := NewBalanceChecker(d("0.1"))
	balances := riskdomain.NewBalanceState(
		[]venuedomain.Balance{{Currency: "BTC", Available: d("0.1")}},
		[]venuedomain.Balance{{Currency: "KRW", Available: d("10000")}},
	)
	// sell leg: venue-a must keep 10% of its 0.1 BTC balance in reserve, so
	// it can't spare the full 1 BTC the sell leg needs
	err := bc.Check(sampleSignal(), balances, "KRW-BTC", "BTC_KRW")
	if apperror.GetCode(err) != apperror.CodeRiskRejected {
		t.Fatalf("expected CodeRiskRejected, got %v", err)
	}
}

func TestBalanceCheckerAllowsWithSufficientBalances(t *testing.T) {
	bc := NewBalanceChecker(d("0.1"))
	balances := riskdomain.NewBalanceState(
		[]venuedomain.Balance{{Currency: "BTC", Available: d("10")}},
		[]venuedomain.Balance{{Currency: "KRW", Available: d("10000")}},
	)
	if err := bc.Check(sampleSignal(), balances, "KRW-BTC", "BTC_KRW"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestManagerEvaluateStopsAtFirstFailingGate(t *testing.T) {
	log := logger.NewDefault()
	cb := NewCircuitBreaker(log, 1, time.Second)
	cb.RecordResult(errors.New("trip it"))

	pl := NewPositionLimiter(d("0"), d("0"))
	bc := NewBalanceChecker(d("0"))
	mgr := NewManager(cb, pl, bc)

	balances := riskdomain.NewBalanceState(nil, nil)
	err := mgr.Evaluate(sampleSignal(), balances, "KRW-BTC", "BTC_KRW")
	if apperror.GetCode(err) != apperror.CodeCircuitOpen {
		t.Fatalf("expected CodeCircuitOpen to win over later gates, got %v", err)
	}
}
