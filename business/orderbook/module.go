// Package orderbook implements the orderbook bounded context: per-venue,
// per-symbol live snapshots kept current by each venue's streaming feed.
package orderbook

import (
	"context"

	obApp "github.com/karb/arbitrage-engine/business/orderbook/app"
	obDI "github.com/karb/arbitrage-engine/business/orderbook/di"
	venueDI "github.com/karb/arbitrage-engine/business/venue/di"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/di"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

// Module implements the orderbook bounded context for the config's default
// trading pair. The engine module constructs additional per-pair Managers
// and Feeds directly from business/orderbook/app when running more than
// one pair, since DI tokens only address singletons.
type Module struct{}

// RegisterServices registers the default pair's per-venue Managers.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, obDI.ManagerA, func(sr di.ServiceRegistry) *obApp.Manager {
		cfg := sr.Get("config").(*config.Config)
		return obApp.NewManager("venue-a", cfg.Trading.SymbolA)
	})

	di.RegisterToken(c, obDI.ManagerB, func(sr di.ServiceRegistry) *obApp.Manager {
		cfg := sr.Get("config").(*config.Config)
		return obApp.NewManager("venue-b", cfg.Trading.SymbolB)
	})

	return nil
}

// Startup launches the default pair's feeds as background goroutines,
// starting venue A's before venue B's.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	sr := mono.Services()
	cfg := mono.Config()

	managerA := di.MustGet[*obApp.Manager](sr, obDI.ManagerA)
	managerB := di.MustGet[*obApp.Manager](sr, obDI.ManagerB)
	wrapperA := venueDI.GetWrapperA(sr)
	wrapperB := venueDI.GetWrapperB(sr)

	feedA := obApp.NewFeed(wrapperA, managerA, cfg.Trading.SymbolA, log)
	go feedA.Run(ctx)

	feedB := obApp.NewFeed(wrapperB, managerB, cfg.Trading.SymbolB, log)
	go feedB.Run(ctx)

	log.Info(ctx, "orderbook module started", "symbol_a", cfg.Trading.SymbolA, "symbol_b", cfg.Trading.SymbolB)
	return nil
}
