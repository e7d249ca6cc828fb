// Package app implements the risk bounded context: an ordered chain of
// gates (circuit breaker, then position limiter, then balance checker) a
// strategy signal must clear before the executor is allowed to act on it.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	riskdomain "github.com/karb/arbitrage-engine/business/risk/domain"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/circuitbreaker"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// CircuitBreaker gates trading on recent execution outcomes: threshold
// consecutive failures (default three) trip it open for the cooldown
// (default 5 seconds). It does not wrap the call it protects; it gates a
// decision made before execution, so Allow only inspects state and
// RecordResult feeds the outcome back in afterward.
type CircuitBreaker struct {
	cb *circuitbreaker.CircuitBreaker[struct{}]
}

// NewCircuitBreaker builds a CircuitBreaker, logging every state transition.
// threshold and cooldown come from risk.circuit_breaker_threshold/_cooldown;
// a non-positive threshold falls back to the package default.
func NewCircuitBreaker(log logger.LoggerInterface, threshold int, cooldown time.Duration) *CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig("risk")
	if threshold > 0 {
		cfg.ConsecutiveFailures = uint32(threshold)
	}
	if cooldown > 0 {
		cfg.Cooldown = cooldown
	}
	cfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "risk circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
	}
	return &CircuitBreaker{cb: circuitbreaker.New[struct{}](cfg)}
}

// Allow reports whether the breaker is currently closed or half-open.
func (c *CircuitBreaker) Allow() bool {
	return c.cb.State() != gobreaker.StateOpen
}

// RecordResult feeds an execution outcome back into the breaker.
func (c *CircuitBreaker) RecordResult(err error) {
	_, _ = c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, err
	})
}

// PositionLimiter rejects signals whose notional value exceeds the
// configured ceiling. Notional is computed from the higher of the two legs'
// prices, since that is the larger capital commitment of the two.
type PositionLimiter struct {
	maxVolume   decimal.Decimal
	maxNotional decimal.Decimal
}

// NewPositionLimiter builds a PositionLimiter.
func NewPositionLimiter(maxVolume, maxNotional decimal.Decimal) *PositionLimiter {
	return &PositionLimiter{maxVolume: maxVolume, maxNotional: maxNotional}
}

// Check returns an error if signal's size exceeds either configured limit.
func (l *PositionLimiter) Check(signal *strategydomain.Signal) error {
	if l.maxVolume.IsPositive() && signal.Volume.GreaterThan(l.maxVolume) {
		return apperror.New(apperror.CodeRiskRejected,
			apperror.WithContext("volume " + signal.Volume.String() + " exceeds position limit " + l.maxVolume.String()))
	}

	higherPrice := decimal.Max(signal.BuyPrice, signal.SellPrice)
	notional := higherPrice.Mul(signal.Volume)
	if l.maxNotional.IsPositive() && notional.GreaterThan(l.maxNotional) {
		return apperror.New(apperror.CodeRiskRejected,
			apperror.WithContext("notional " + notional.String() + " exceeds position limit " + l.maxNotional.String()))
	}
	return nil
}

// BalanceChecker rejects signals that would eat into a venue's reserve.
// A leg is rejected unless balance-amount >= reserveRatio*balance, i.e. the
// trade may never spend more than (1-reserveRatio) of the available
// balance. The buy leg spends buyPrice*volume of the quote currency; the
// sell leg spends volume of the base currency.
type BalanceChecker struct {
	reserveRatio decimal.Decimal
}

// NewBalanceChecker builds a BalanceChecker.
func NewBalanceChecker(reserveRatio decimal.Decimal) *BalanceChecker {
	return &BalanceChecker{reserveRatio: reserveRatio}
}

// SplitSymbol returns (base, quote) for a symbol in either "BASE-QUOTE",
// "QUOTE-BASE", or "BASE_QUOTE" form, given which side the quote currency
// is conventionally on for that venue.
func SplitSymbol(symbol string, quoteFirst bool) (base, quote string) {
	sep := "-"
	if strings.Contains(symbol, "_") {
		sep = "_"
	}
	parts := strings.SplitN(symbol, sep, 2)
	if len(parts) != 2 {
		return symbol, "KRW"
	}
	if quoteFirst {
		return parts[1], parts[0]
	}
	return parts[0], parts[1]
}

// Check rejects signal if either leg's venue lacks sufficient headroom.
// symbolA/symbolB are each venue's own wire-format symbol for this pair,
// used only to resolve which currency is "base" and which is "quote".
func (c *BalanceChecker) Check(signal *strategydomain.Signal, balances *riskdomain.BalanceState, symbolA, symbolB string) error {
	buySymbol, sellSymbol := symbolA, symbolB
	buyQuoteFirst, sellQuoteFirst := true, false
	if signal.BuyVenue == "venue-b" {
		buySymbol, sellSymbol = symbolB, symbolA
		buyQuoteFirst, sellQuoteFirst = false, true
	}

	_, buyQuote := SplitSymbol(buySymbol, buyQuoteFirst)
	sellBase, _ := SplitSymbol(sellSymbol, sellQuoteFirst)

	buyAmount := signal.BuyPrice.Mul(signal.Volume)
	quoteBalance := balances.Available(signal.BuyVenue, buyQuote)
	if quoteBalance.Available.Sub(buyAmount).LessThan(quoteBalance.Available.Mul(c.reserveRatio)) {
		return apperror.New(apperror.CodeRiskRejected,
			apperror.WithContext(signal.BuyVenue+": insufficient "+buyQuote+" balance for buy leg"))
	}

	sellAmount := signal.Volume
	baseBalance := balances.Available(signal.SellVenue, sellBase)
	if baseBalance.Available.Sub(sellAmount).LessThan(baseBalance.Available.Mul(c.reserveRatio)) {
		return apperror.New(apperror.CodeRiskRejected,
			apperror.WithContext(signal.SellVenue+": insufficient "+sellBase+" balance for sell leg"))
	}

	return nil
}

// Manager chains the three gates in order: circuit breaker, then position
// limiter, then balance checker. The first gate to reject stops evaluation.
type Manager struct {
	CircuitBreaker  *CircuitBreaker
	PositionLimiter *PositionLimiter
	BalanceChecker  *BalanceChecker
}

// NewManager builds a Manager from its three gates.
func NewManager(cb *CircuitBreaker, pl *PositionLimiter, bc *BalanceChecker) *Manager {
	return &Manager{CircuitBreaker: cb, PositionLimiter: pl, BalanceChecker: bc}
}

// Evaluate runs signal through all three gates, returning the first error.
func (m *Manager) Evaluate(signal *strategydomain.Signal, balances *riskdomain.BalanceState, symbolA, symbolB string) error {
	if !m.CircuitBreaker.Allow() {
		return apperror.New(apperror.CodeCircuitOpen, apperror.WithContext("risk circuit breaker is open"))
	}
	if err := m.PositionLimiter.Check(signal); err != nil {
		return err
	}
	if err := m.BalanceChecker.Check(signal, balances, symbolA, symbolB); err != nil {
		return err
	}
	return nil
}
