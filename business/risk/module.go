// Package risk implements the risk bounded context: the circuit
// breaker/position-limiter/balance-checker chain every strategy signal
// must clear before the executor is allowed to act on it.
package risk

import (
	"context"

	riskApp "github.com/karb/arbitrage-engine/business/risk/app"
	riskDI "github.com/karb/arbitrage-engine/business/risk/di"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/di"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

// Module implements the risk bounded context.
type Module struct{}

// RegisterServices registers the risk Manager with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, riskDI.Manager, func(sr di.ServiceRegistry) *riskApp.Manager {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		cb := riskApp.NewCircuitBreaker(log, cfg.Risk.CircuitBreakerThreshold, cfg.Risk.CircuitBreakerCooldown)
		pl := riskApp.NewPositionLimiter(cfg.Risk.MaxVolumeDecimal(), cfg.Risk.MaxNotionalDecimal())
		bc := riskApp.NewBalanceChecker(cfg.Risk.ReserveRatioDecimal())

		return riskApp.NewManager(cb, pl, bc)
	})

	return nil
}

// Startup performs no eager work.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "risk module started")
	return nil
}
