package customservices

import (
	"context"
	"errors"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/exceptions"
)

// serviceLookup serves the catalog resolver inside the API process, where
// the portal backend is this usecase rather than an HTTP client.
type serviceLookup struct {
	usecase contracts.CustomServiceUsecase
}

func NewServiceLookup(usecase contracts.CustomServiceUsecase) contracts.ServiceLookupClient {
	return &serviceLookup{usecase: usecase}
}

func (l *serviceLookup) GetPublicService(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	return toLookupResult(l.usecase.GetPublicServiceConfig(ctx, serviceID))
}

func (l *serviceLookup) GetFormConfig(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	return toLookupResult(l.usecase.GetFormConfig(ctx, serviceID))
}

// toLookupResult turns the usecase not found error into (nil, nil).
func toLookupResult(config *responses.ServiceConfig, err error) (*models.ServiceConfig, error) {
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return toServiceConfigModel(config), nil
}
