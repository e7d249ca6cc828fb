package app

import (
	"context"
	"time"

	"github.com/karb/arbitrage-engine/business/venue/app"
	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// retryInterval is the fixed delay between resubscribe attempts. It does
// not grow with consecutive failures: a flaky venue feed is expected to
// recover within a few seconds, and a fixed interval keeps the book's
// staleness bounded and predictable rather than backing off into minutes.
const retryInterval = 5 * time.Second

// Feed keeps a Manager's snapshot live by subscribing to a venue's
// websocket orderbook stream and reconnecting on a fixed interval whenever
// the subscription drops.
type Feed struct {
	wrapper app.Wrapper
	manager *Manager
	symbol  string
	log     logger.LoggerInterface
}

// NewFeed builds a Feed for one venue/symbol pair.
func NewFeed(wrapper app.Wrapper, manager *Manager, symbol string, log logger.LoggerInterface) *Feed {
	return &Feed{wrapper: wrapper, manager: manager, symbol: symbol, log: log}
}

// Run subscribes to the venue's orderbook stream and feeds every push into
// the Manager, resubscribing on a fixed interval until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		err := f.wrapper.SubscribeOrderBook(ctx, f.symbol, func(ob *venuedomain.OrderBook) {
			if loadErr := f.manager.LoadSnapshot(ob); loadErr != nil {
				f.log.Warn(ctx, "failed to load orderbook push", "symbol", f.symbol, "error", loadErr.Error())
			}
		})

		if ctx.Err() != nil {
			return
		}

		if err != nil {
			f.log.Warn(ctx, "orderbook subscription dropped, retrying", "symbol", f.symbol, "error", err.Error(), "retry_in", retryInterval.String())
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}
	}
}
