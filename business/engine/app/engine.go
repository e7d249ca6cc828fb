package app

import (
	"context"
	"time"

	enginedomain "github.com/karb/arbitrage-engine/business/engine/domain"
	riskdomain "github.com/karb/arbitrage-engine/business/risk/domain"
	venueapp "github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// Engine runs the tick loop: once per interval, it fetches both venues'
// balances a single time, then evaluates every configured pair against
// that shared balance snapshot, isolating each pair's failure from the rest.
type Engine struct {
	pairs        []*enginedomain.PairContext
	wrapperA     venueapp.Wrapper
	wrapperB     venueapp.Wrapper
	pollInterval time.Duration
	reporter     Reporter
	log          logger.LoggerInterface
}

// New builds an Engine over pairs, sharing wrapperA/wrapperB for the
// once-per-tick balance fetch.
func New(pairs []*enginedomain.PairContext, wrapperA, wrapperB venueapp.Wrapper, pollInterval time.Duration, reporter Reporter, log logger.LoggerInterface) *Engine {
	return &Engine{
		pairs:        pairs,
		wrapperA:     wrapperA,
		wrapperB:     wrapperB,
		pollInterval: pollInterval,
		reporter:     reporter,
		log:          log,
	}
}

// Start runs RunOnce on a fixed interval until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.reporter.Start(ctx); err != nil {
		return err
	}
	defer e.reporter.Stop()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.RunOnce(ctx)
		}
	}
}

// RunOnce fetches both venues' balances once, then evaluates every pair
// against that shared snapshot. A panic or error in one pair is logged and
// does not prevent the remaining pairs from being evaluated.
func (e *Engine) RunOnce(ctx context.Context) {
	balancesA, errA := e.wrapperA.GetBalances(ctx)
	if errA != nil {
		e.log.Warn(ctx, "failed to fetch venue-a balances, skipping tick", "error", errA.Error())
		return
	}
	balancesB, errB := e.wrapperB.GetBalances(ctx)
	if errB != nil {
		e.log.Warn(ctx, "failed to fetch venue-b balances, skipping tick", "error", errB.Error())
		return
	}
	balances := riskdomain.NewBalanceState(balancesA, balancesB)

	for _, pair := range e.pairs {
		e.evaluatePair(ctx, pair, balances)
	}
}

// evaluatePair recovers from a panic in pair evaluation so one pair's bug
// cannot take down the whole engine loop.
func (e *Engine) evaluatePair(ctx context.Context, pair *enginedomain.PairContext, balances *riskdomain.BalanceState) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error(ctx, "pair evaluation panicked", "symbol_a", pair.SymbolA, "symbol_b", pair.SymbolB, "panic", r)
		}
	}()

	obA := pair.ManagerA.AsOrderBook()
	obB := pair.ManagerB.AsOrderBook()
	if obA == nil || obB == nil {
		return
	}

	signal, ok := pair.Strategy.Evaluate(obA, obB)
	if !ok {
		return
	}
	e.reporter.ReportSignal(signal)

	if err := pair.Risk.Evaluate(signal, balances, pair.SymbolA, pair.SymbolB); err != nil {
		e.log.Info(ctx, "signal rejected by risk manager", "symbol_a", pair.SymbolA, "symbol_b", pair.SymbolB, "reason", err.Error())
		return
	}

	result := pair.Executor.Execute(ctx, signal)
	e.reporter.ReportExecution(result)
	pair.Risk.CircuitBreaker.RecordResult(result.Err())

	status := "filled"
	if err := result.Err(); err != nil {
		status = "failed"
	}
	e.log.Info(ctx, "trade completed",
		"pair", pair.SymbolA+"/"+pair.SymbolB,
		"direction", string(signal.Direction),
		"volume", signal.Volume.String(),
		"spread", signal.SpreadRate.String(),
		"status", status,
	)
}
