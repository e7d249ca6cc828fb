package venueb

import (
	"context"

	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/business/venue/infra/common"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// DefaultLimits are this venue's observed public/private rate-limit tiers.
var DefaultLimits = common.DefaultLimits{
	PublicCapacity:  20,
	PublicRate:      20,
	PrivateCapacity: 15,
	PrivateRate:     15,
}

// Gateway is the HMAC-signing venue's Gateway implementation. It overrides
// Request only to fold {"endpoint": endpoint} into signed non-GET params
// before delegating to the shared transport, since this venue's signature
// and form body both need to see that field.
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

// Request folds the endpoint into params for signed non-GET calls before
// delegating to the shared transport.
func (g *Gateway) Request(ctx context.Context, method, endpoint string, params map[string]string, out interface{}, opts app.RequestOptions) error {
	if opts.Signed && method != "GET" {
		folded := make(map[string]string, len(params)+1)
		for k, v := range params {
			folded[k] = v
		}
		folded["endpoint"] = endpoint
		params = folded
	}
	return g.BaseGateway.Request(ctx, method, endpoint, params, out, opts)
}

var _ app.Gateway = (*Gateway)(nil)
