// Package venue implements the venue bounded context: gateway, parser and
// wrapper adapters for each trading venue, exposed behind the venue-neutral
// app.Wrapper port.
package venue

import (
	"context"

	"github.com/karb/arbitrage-engine/business/venue/app"
	venueDI "github.com/karb/arbitrage-engine/business/venue/di"
	"github.com/karb/arbitrage-engine/business/venue/infra/common"
	"github.com/karb/arbitrage-engine/business/venue/infra/venuea"
	"github.com/karb/arbitrage-engine/business/venue/infra/venueb"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/di"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/monolith"
)

// Module implements the venue bounded context.
type Module struct{}

// RegisterServices registers both venues' wrappers with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, venueDI.WrapperA, func(sr di.ServiceRegistry) app.Wrapper {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		gw, err := venuea.NewGateway(common.Settings{
			Name:         "venue-a",
			RestBase:     cfg.Exchanges.A.RestBase,
			WebSocketURL: cfg.Exchanges.A.WebSocketURL,
			AccessKey:    cfg.Exchanges.A.AccessKey,
			SecretKey:    cfg.Exchanges.A.SecretKey,
		}, log)
		if err != nil {
			panic("failed to create venue-a gateway: " + err.Error())
		}
		return venuea.NewWrapper(gw, log)
	})

	di.RegisterToken(c, venueDI.WrapperB, func(sr di.ServiceRegistry) app.Wrapper {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		gw, err := venueb.NewGateway(common.Settings{
			Name:         "venue-b",
			RestBase:     cfg.Exchanges.B.RestBase,
			WebSocketURL: cfg.Exchanges.B.WebSocketURL,
			AccessKey:    cfg.Exchanges.B.AccessKey,
			SecretKey:    cfg.Exchanges.B.SecretKey,
		}, log)
		if err != nil {
			panic("failed to create venue-b gateway: " + err.Error())
		}
		return venueb.NewWrapper(gw, log)
	})

	return nil
}

// Startup performs no eager work: both wrappers are lazily constructed on
// first use by whichever module resolves them first.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "venue module started")
	return nil
}
