package contracts

import (
	"context"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

type SettingsRepository interface {
	FindGlobal(ctx context.Context) (*models.Settings, error)
	UpsertGlobal(ctx context.Context, settings *models.Settings) error
}

type SettingsUsecase interface {
	GetPublicSettings(ctx context.Context) (*responses.PublicSettings, error)
	UpdateSettings(ctx context.Context, request *requests.UpdateSettings) (*responses.PublicSettings, error)
}
