package contracts

import (
	"context"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

// ServiceLookupClient reads service definitions from the portal backend.
// A missing service is reported as (nil, nil).
type ServiceLookupClient interface {
	GetPublicService(ctx context.Context, serviceID string) (*models.ServiceConfig, error)
	GetFormConfig(ctx context.Context, serviceID string) (*models.ServiceConfig, error)
}

type SettingsClient interface {
	GetPublicSettings(ctx context.Context) (*models.ConvenienceFeeSettings, error)
}

type UploadClient interface {
	Upload(ctx context.Context, field models.FormField, file models.LocalFile, serviceID string) (string, error)
}

type PaymentClient interface {
	Initiate(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error)
	Cancel(ctx context.Context, transactionID string) (*responses.CancelPayment, error)
	GetTransaction(ctx context.Context, transactionID string) (*responses.Transaction, error)
}
