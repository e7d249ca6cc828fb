package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/logger"
)

type fakeWrapper struct {
	buyErr  error
	sellErr error
}

func (f *fakeWrapper) GetOrderBook(ctx context.Context, symbol string) (*venuedomain.OrderBook, error) {
	return nil, nil
}
func (f *fakeWrapper) GetBalances(ctx context.Context) ([]venuedomain.Balance, error) { return nil, nil }
func (f *fakeWrapper) PlaceOrder(ctx context.Context, req venuedomain.OrderRequest) (*venuedomain.OrderResult, error) {
	return nil, nil
}
func (f *fakeWrapper) CancelOrder(ctx context.Context, orderID string) error { return nil }
func (f *fakeWrapper) GetOrderStatus(ctx context.Context, orderID string) (*venuedomain.OrderResult, error) {
	return nil, nil
}
func (f *fakeWrapper) BuyMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*venuedomain.OrderResult, error) {
	if f.buyErr != nil {
		return nil, f.buyErr
	}
	return &venuedomain.OrderResult{OrderID: "buy-1", Symbol: symbol, Status: "filled", FilledQuantity: amount}, nil
}
func (f *fakeWrapper) SellMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*venuedomain.OrderResult, error) {
	if f.sellErr != nil {
		return nil, f.sellErr
	}
	return &venuedomain.OrderResult{OrderID: "sell-1", Symbol: symbol, Status: "filled", FilledQuantity: amount}, nil
}
func (f *fakeWrapper) SubscribeOrderBook(ctx context.Context, symbol string, onUpdate func(*venuedomain.OrderBook)) error {
	return nil
}
func (f *fakeWrapper) Close() error { return nil }

func sampleSignal() *strategydomain.Signal {
	return &strategydomain.Signal{
		Direction: strategydomain.SellOnA,
		BuyVenue:  "venue-b",
		SellVenue: "venue-a",
		BuyPrice:  decimal.RequireFromString("100"),
		SellPrice: decimal.RequireFromString("110"),
		Volume:    decimal.RequireFromString("1"),
	}
}

func TestExecuteDryRunProducesSyntheticFillsWithNoWrapperCalls(t *testing.T) {
	wrapperA := &fakeWrapper{buyErr: errors.New("must not be called"), sellErr: errors.New("must not be called")}
	wrapperB := &fakeWrapper{buyErr: errors.New("must not be called"), sellErr: errors.New("must not be called")}
	exec := NewExecutor(wrapperA, wrapperB, "KRW-BTC", "BTC_KRW", true, logger.NewDefault())

	result := exec.Execute(context.Background(), sampleSignal())
	if result.Err() != nil {
		t.Fatalf("dry-run must never fail: %v", result.Err())
	}
	if result.Buy.Result.OrderID != "dryrun" || result.Sell.Result.OrderID != "dryrun" {
		t.Fatal("expected synthetic dryrun order IDs")
	}
	if result.Buy.Result.Status != "filled" || result.Sell.Result.Status != "filled" {
		t.Fatal("expected synthetic fills to report status filled")
	}
}

func TestExecuteLiveDispatchesBothLegsAndReportsBothErrorsIndependently(t *testing.T) {
	wrapperA := &fakeWrapper{}
	wrapperB := &fakeWrapper{buyErr: errors.New("buy leg down")}
	exec := NewExecutor(wrapperA, wrapperB, "KRW-BTC", "BTC_KRW", false, logger.NewDefault())

	result := exec.Execute(context.Background(), sampleSignal())
	if result.Buy.Err == nil {
		t.Fatal("expected buy leg error to be reported")
	}
	if apperror.GetCode(result.Buy.Err) != apperror.CodeExecutionFailed {
		t.Fatalf("expected CodeExecutionFailed, got %v", result.Buy.Err)
	}
	if result.Sell.Err != nil {
		t.Fatalf("sell leg must still have been attempted and succeeded: %v", result.Sell.Err)
	}
	if result.Sell.Result == nil || result.Sell.Result.OrderID != "sell-1" {
		t.Fatal("expected sell leg to have been dispatched despite buy leg failure")
	}
}

func TestExecuteLiveKeepsBuyQuantityBaseDenominatedForVenueB(t *testing.T) {
	var capturedAmount decimal.Decimal
	wrapperB := &recordingWrapper{fakeWrapper: fakeWrapper{}, onBuy: func(amount decimal.Decimal) { capturedAmount = amount }}
	wrapperA := &fakeWrapper{}
	exec := NewExecutor(wrapperA, wrapperB, "KRW-BTC", "BTC_KRW", false, logger.NewDefault())

	signal := sampleSignal() // BuyVenue = venue-b, base-denominated already
	exec.Execute(context.Background(), signal)
	if !capturedAmount.Equal(signal.Volume) {
		t.Fatalf("venue-b buy should stay base-denominated: got %s, want %s", capturedAmount, signal.Volume)
	}
}

type recordingWrapper struct {
	fakeWrapper
	onBuy func(decimal.Decimal)
}

func (r *recordingWrapper) BuyMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*venuedomain.OrderResult, error) {
	r.onBuy(amount)
	return r.fakeWrapper.BuyMarket(ctx, symbol, amount)
}
