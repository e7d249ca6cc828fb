// Package execution implements the execution bounded context: dispatching
// a confirmed signal's two legs, either as dry-run synthetic fills or as
// live concurrent market orders.
package execution

import (
	"context"

	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	execDI "github.com/karb/arbitrage-engine/business/execution/di"
	venueDI "github.com/karb/arbitrage-engine/business/venue/di"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/di"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

// Module implements the execution bounded context.
type Module struct{}

// RegisterServices registers the default pair's Executor.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, execDI.Executor, func(sr di.ServiceRegistry) *execApp.Executor {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		wrapperA := venueDI.GetWrapperA(sr)
		wrapperB := venueDI.GetWrapperB(sr)

		return execApp.NewExecutor(wrapperA, wrapperB, cfg.Trading.SymbolA, cfg.Trading.SymbolB, cfg.DryRun, log)
	})

	return nil
}

// Startup performs no eager work.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "execution module started", "dry_run", mono.Config().DryRun)
	return nil
}
