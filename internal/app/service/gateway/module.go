package gateway

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/config"
)

func newGateway(cfg *config.Config, log *zap.SugaredLogger) Gateway {
	return NewClient(cfg, log)
}

// Module exposes the provider client via Fx.
var Module = fx.Options(
	fx.Provide(newGateway),
)
