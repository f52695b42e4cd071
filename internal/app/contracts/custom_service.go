package contracts

import (
	"context"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

type CustomServiceRepository interface {
	FindByID(ctx context.Context, serviceID string) (*models.CustomService, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.CustomService, int64, error)
	Create(ctx context.Context, service *models.CustomService) error
	Update(ctx context.Context, service *models.CustomService) error
	SetEnabled(ctx context.Context, serviceID string, enabled bool) (bool, error)
	Delete(ctx context.Context, serviceID string) (bool, error)
}

type FormConfigRepository interface {
	FindByServiceID(ctx context.Context, serviceID string) (*models.FormConfig, error)
	Upsert(ctx context.Context, formConfig *models.FormConfig) error
}

type CustomServiceUsecase interface {
	GetPublicServiceConfig(ctx context.Context, serviceID string) (*responses.ServiceConfig, error)
	GetFormConfig(ctx context.Context, serviceID string) (*responses.ServiceConfig, error)
	ListCustomServices(ctx context.Context, request *requests.Pagination) ([]responses.CustomService, int64, error)
	GetCustomService(ctx context.Context, serviceID string) (*responses.CustomService, error)
	CreateCustomService(ctx context.Context, request *requests.CreateCustomService) (*responses.CustomService, error)
	UpdateCustomService(ctx context.Context, serviceID string, request *requests.UpdateCustomService) (*responses.CustomService, error)
	SetCustomServiceEnabled(ctx context.Context, serviceID string, enabled bool) error
	DeleteCustomService(ctx context.Context, serviceID string) error
	UpsertFormConfig(ctx context.Context, serviceID string, request *requests.UpsertFormConfig) (*responses.ServiceConfig, error)
}
