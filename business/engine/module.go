// Package engine implements the engine bounded context: the tick loop
// tying together every other bounded context for every configured pair.
package engine

import (
	"context"
	"strings"

	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	engineApp "github.com/karb/arbitrage-engine/business/engine/app"
	engineDI "github.com/karb/arbitrage-engine/business/engine/di"
	enginedomain "github.com/karb/arbitrage-engine/business/engine/domain"
	"github.com/karb/arbitrage-engine/business/engine/infra"
	obApp "github.com/karb/arbitrage-engine/business/orderbook/app"
	obDI "github.com/karb/arbitrage-engine/business/orderbook/di"
	riskApp "github.com/karb/arbitrage-engine/business/risk/app"
	strategyApp "github.com/karb/arbitrage-engine/business/strategy/app"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	venueDI "github.com/karb/arbitrage-engine/business/venue/di"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/di"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

// Module implements the engine bounded context.
type Module struct {
	extraFeeds []*obApp.Feed
}

// RegisterServices builds one PairContext per configured pair and wires
// them into an Engine. The default pair (config trading.symbol_a/symbol_b)
// reuses the orderbook module's already-registered Managers; every other
// configured pair gets its own freshly built Manager pair, whose Feeds are
// started alongside the default pair's in Startup.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, engineDI.Engine, func(sr di.ServiceRegistry) *engineApp.Engine {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		wrapperA := venueDI.GetWrapperA(sr)
		wrapperB := venueDI.GetWrapperB(sr)

		strategyCfg := strategydomain.Config{
			MinProfitRate: cfg.Trading.MinProfitRateDecimal(),
			MaxVolume:     cfg.Trading.MaxVolumeDecimal(),
			FeeA:          cfg.Trading.FeeADecimal(),
			FeeB:          cfg.Trading.FeeBDecimal(),
		}

		pairStrings := config.LoadPairs("", cfg)
		pairs := make([]*enginedomain.PairContext, 0, len(pairStrings))

		for _, pairStr := range pairStrings {
			symbolA, symbolB, ok := splitPair(pairStr)
			if pairStr == cfg.Trading.SymbolA+"/"+cfg.Trading.SymbolB {
				// LoadPairs' single-pair fallback already names both venue symbols.
				symbolA, symbolB, ok = cfg.Trading.SymbolA, cfg.Trading.SymbolB, true
			}
			if !ok {
				log.Warn(context.Background(), "skipping malformed pair entry", "pair", pairStr)
				continue
			}

			var managerA, managerB *obApp.Manager
			if symbolA == cfg.Trading.SymbolA && symbolB == cfg.Trading.SymbolB {
				managerA = di.MustGet[*obApp.Manager](sr, obDI.ManagerA)
				managerB = di.MustGet[*obApp.Manager](sr, obDI.ManagerB)
			} else {
				managerA = obApp.NewManager("venue-a", symbolA)
				managerB = obApp.NewManager("venue-b", symbolB)
				m.extraFeeds = append(m.extraFeeds,
					obApp.NewFeed(wrapperA, managerA, symbolA, log),
					obApp.NewFeed(wrapperB, managerB, symbolB, log),
				)
			}

			cb := riskApp.NewCircuitBreaker(log, cfg.Risk.CircuitBreakerThreshold, cfg.Risk.CircuitBreakerCooldown)
			pl := riskApp.NewPositionLimiter(cfg.Risk.MaxVolumeDecimal(), cfg.Risk.MaxNotionalDecimal())
			bc := riskApp.NewBalanceChecker(cfg.Risk.ReserveRatioDecimal())

			pairs = append(pairs, &enginedomain.PairContext{
				SymbolA:  symbolA,
				SymbolB:  symbolB,
				ManagerA: managerA,
				ManagerB: managerB,
				Strategy: strategyApp.New(strategyCfg),
				Risk:     riskApp.NewManager(cb, pl, bc),
				Executor: execApp.NewExecutor(wrapperA, wrapperB, symbolA, symbolB, cfg.DryRun, log),
			})
		}

		reporter := newReporter(cfg)
		return engineApp.New(pairs, wrapperA, wrapperB, cfg.Trading.PollIntervalDuration(), reporter, log)
	})

	return nil
}

// splitPair derives each venue's own wire-format symbol from a
// "BASE/QUOTE" pair entry (e.g. "BTC/KRW"): venue A names markets
// "QUOTE-BASE" ("KRW-BTC"), venue B names them "BASE_QUOTE" ("BTC_KRW").
func splitPair(pairStr string) (symbolA, symbolB string, ok bool) {
	parts := strings.SplitN(pairStr, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	base, quote := parts[0], parts[1]
	return quote + "-" + base, base + "_" + quote, true
}

func newReporter(cfg *config.Config) engineApp.Reporter {
	if cfg.App.UI == "tui" {
		return infra.NewTUIReporter()
	}
	return infra.NewConsoleReporter()
}

// Startup launches every pair's feeds beyond the default pair (already
// started by the orderbook module) and runs the Engine's tick loop in the
// background.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	for _, feed := range m.extraFeeds {
		go feed.Run(ctx)
	}

	eng := di.MustGet[*engineApp.Engine](mono.Services(), engineDI.Engine)
	go func() {
		if err := eng.Start(ctx); err != nil {
			log.Error(ctx, "engine stopped with error", "error", err.Error())
		}
	}()

	log.Info(ctx, "engine module started", "pairs", len(m.extraFeeds)/2+1)
	return nil
}
