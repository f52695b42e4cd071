package middlewares

import (
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	JWTManager     *jwtmanager.JWTManager
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, jwtManager *jwtmanager.JWTManager) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		JWTManager:     jwtManager,
	}
}
