// Package app implements the execution bounded context: turning a
// confirmed arbitrage signal into two market orders, one per venue.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	venueapp "github.com/karb/arbitrage-engine/business/venue/app"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// LegResult is one venue's fill outcome for a two-leg trade.
type LegResult struct {
	Venue  string
	Result *venuedomain.OrderResult
	Err    error
}

// ExecutionResult is the outcome of dispatching both legs of a signal.
type ExecutionResult struct {
	Buy  LegResult
	Sell LegResult
}

// Executor dispatches both legs of a strategy signal, either as dry-run
// synthetic fills or as live orders sent concurrently to both venues.
type Executor struct {
	wrapperA venueapp.Wrapper
	wrapperB venueapp.Wrapper
	symbolA  string
	symbolB  string
	dryRun   bool
	log      logger.LoggerInterface
}

// NewExecutor builds an Executor bound to both venues' wrappers.
func NewExecutor(wrapperA, wrapperB venueapp.Wrapper, symbolA, symbolB string, dryRun bool, log logger.LoggerInterface) *Executor {
	return &Executor{wrapperA: wrapperA, wrapperB: wrapperB, symbolA: symbolA, symbolB: symbolB, dryRun: dryRun, log: log}
}

// Execute dispatches both legs of signal. In dry-run mode it synthesizes
// fills with no network I/O; live, it dispatches both legs concurrently
// and returns as soon as both have completed, each leg's own error (if
// any) carried in its LegResult rather than short-circuiting the other.
func (e *Executor) Execute(ctx context.Context, signal *strategydomain.Signal) ExecutionResult {
	buyWrapper, buySymbol := e.wrapperFor(signal.BuyVenue)
	sellWrapper, sellSymbol := e.wrapperFor(signal.SellVenue)

	if e.dryRun {
		return ExecutionResult{
			Buy:  LegResult{Venue: signal.BuyVenue, Result: dryRunFill(signal.BuyVenue, buySymbol, signal.Volume)},
			Sell: LegResult{Venue: signal.SellVenue, Result: dryRunFill(signal.SellVenue, sellSymbol, signal.Volume)},
		}
	}

	buyCh := make(chan LegResult, 1)
	sellCh := make(chan LegResult, 1)

	go func() {
		result, err := buyWrapper.BuyMarket(ctx, buySymbol, buyQuantity(signal, buySymbol))
		buyCh <- LegResult{Venue: signal.BuyVenue, Result: result, Err: wrapExecErr(signal.BuyVenue, err)}
	}()
	go func() {
		result, err := sellWrapper.SellMarket(ctx, sellSymbol, signal.Volume)
		sellCh <- LegResult{Venue: signal.SellVenue, Result: result, Err: wrapExecErr(signal.SellVenue, err)}
	}()

	buyResult := <-buyCh
	sellResult := <-sellCh

	if buyResult.Err != nil {
		e.log.Error(ctx, "buy leg failed", "venue", signal.BuyVenue, "error", buyResult.Err.Error())
	}
	if sellResult.Err != nil {
		e.log.Error(ctx, "sell leg failed", "venue", signal.SellVenue, "error", sellResult.Err.Error())
	}

	return ExecutionResult{Buy: buyResult, Sell: sellResult}
}

// buyQuantity converts signal.Volume (always base units) into whatever
// unit the buy venue's market-buy order expects: venue A's market buy is
// quote-denominated, so the base volume is converted to a KRW amount at
// the signal's buy price; venue B's is base-denominated already.
func buyQuantity(signal *strategydomain.Signal, buySymbol string) decimal.Decimal {
	if signal.BuyVenue == "venue-a" {
		return signal.Volume.Mul(signal.BuyPrice)
	}
	return signal.Volume
}

func (e *Executor) wrapperFor(venue string) (venueapp.Wrapper, string) {
	if venue == "venue-a" {
		return e.wrapperA, e.symbolA
	}
	return e.wrapperB, e.symbolB
}

func dryRunFill(venue, symbol string, volume decimal.Decimal) *venuedomain.OrderResult {
	return &venuedomain.OrderResult{
		OrderID:        "dryrun",
		Venue:          "dryrun",
		Symbol:         symbol,
		Status:         "filled",
		FilledQuantity: volume,
	}
}

func wrapExecErr(venue string, err error) error {
	if err == nil {
		return nil
	}
	return apperror.New(apperror.CodeExecutionFailed, apperror.WithCause(err),
		apperror.WithContext(venue+": order dispatch failed"))
}

// Err returns the first non-nil leg error, buy leg taking priority, or nil
// if both legs succeeded.
func (r ExecutionResult) Err() error {
	if r.Buy.Err != nil {
		return r.Buy.Err
	}
	return r.Sell.Err
}
