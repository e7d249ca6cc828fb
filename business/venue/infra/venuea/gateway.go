package venuea

import (
	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/business/venue/infra/common"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// DefaultLimits are this venue's observed public/private rate-limit tiers.
var DefaultLimits = common.DefaultLimits{
	PublicCapacity:  10,
	PublicRate:      10,
	PrivateCapacity: 8,
	PrivateRate:     8,
}

// Gateway is the JWT-signing venue's Gateway implementation.
type Gateway struct {
	*common.BaseGateway
}

// NewGateway builds a Gateway for this venue.
func NewGateway(settings common.Settings, log logger.LoggerInterface) (*Gateway, error) {
	settings.Limits = DefaultLimits
	base, err := common.NewBaseGateway(settings, log, signedHeaders)
	if err != nil {
		return nil, err
	}
	return &Gateway{BaseGateway: base}, nil
}

var _ app.Gateway = (*Gateway)(nil)
