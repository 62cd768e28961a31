package app

import (
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/middleware"
)

type Middleware struct {
	Identity *middleware.IdentityMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Identity: middleware.NewIdentityMiddleware(log, cfg.JWTSecretKey),
	}
}
