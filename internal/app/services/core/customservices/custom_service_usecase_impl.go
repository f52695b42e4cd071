package customservices

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type customServiceUsecase struct {
	CustomServiceRepository contracts.CustomServiceRepository
	FormConfigRepository    contracts.FormConfigRepository
	Log                     *zap.Logger
}

var (
	customServiceUsecaseInstance contracts.CustomServiceUsecase
	onceCustomServiceUsecase     sync.Once
)

func NewCustomServiceUsecase(
	customServiceRepository contracts.CustomServiceRepository,
	formConfigRepository contracts.FormConfigRepository,
	logger *zap.Logger,
) contracts.CustomServiceUsecase {
	onceCustomServiceUsecase.Do(func() {
		customServiceUsecaseInstance = newCustomServiceUsecase(customServiceRepository, formConfigRepository, logger)
	})
	return customServiceUsecaseInstance
}

func newCustomServiceUsecase(
	customServiceRepository contracts.CustomServiceRepository,
	formConfigRepository contracts.FormConfigRepository,
	logger *zap.Logger,
) *customServiceUsecase {
	return &customServiceUsecase{
		CustomServiceRepository: customServiceRepository,
		FormConfigRepository:    formConfigRepository,
		Log:                     logger,
	}
}

// GetPublicServiceConfig only exposes enabled services. A disabled service
// is indistinguishable from a missing one.
func (uc *customServiceUsecase) GetPublicServiceConfig(ctx context.Context, serviceID string) (*responses.ServiceConfig, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.GetPublicServiceConfig called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	service, err := uc.CustomServiceRepository.FindByID(ctx, serviceID)
	if err != nil {
		uc.Log.Error("customServiceUsecase.GetPublicServiceConfig error fetching custom service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil || !service.Enabled {
		return nil, exceptions.ErrServiceNotFound(nil, serviceID)
	}

	uc.Log.Info("customServiceUsecase.GetPublicServiceConfig succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return toServiceConfigResponse(service.ToServiceConfig()), nil
}

func (uc *customServiceUsecase) GetFormConfig(ctx context.Context, serviceID string) (*responses.ServiceConfig, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.GetFormConfig called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	formConfig, err := uc.FormConfigRepository.FindByServiceID(ctx, serviceID)
	if err != nil {
		uc.Log.Error("customServiceUsecase.GetFormConfig error fetching form config",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if formConfig == nil {
		return nil, exceptions.ErrServiceNotFound(nil, serviceID)
	}

	return toServiceConfigResponse(formConfig.ToServiceConfig()), nil
}

func (uc *customServiceUsecase) ListCustomServices(ctx context.Context, request *requests.Pagination) ([]responses.CustomService, int64, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.ListCustomServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageKey, request.Page),
		zap.Int(constvars.LoggingPageSizeKey, request.PageSize),
	)

	services, total, err := uc.CustomServiceRepository.FindAll(ctx, request.Page, request.PageSize)
	if err != nil {
		uc.Log.Error("customServiceUsecase.ListCustomServices error fetching custom services",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	result := make([]responses.CustomService, 0, len(services))
	for i := range services {
		result = append(result, *toCustomServiceResponse(&services[i]))
	}

	uc.Log.Info("customServiceUsecase.ListCustomServices succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, total, nil
}

func (uc *customServiceUsecase) GetCustomService(ctx context.Context, serviceID string) (*responses.CustomService, error) {
	service, err := uc.findExisting(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return toCustomServiceResponse(service), nil
}

func (uc *customServiceUsecase) CreateCustomService(ctx context.Context, request *requests.CreateCustomService) (*responses.CustomService, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.CreateCustomService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ID),
	)

	formFields := toModelFormFields(request.FormFields)
	if err := catalog.ValidateFormFields(formFields); err != nil {
		return nil, exceptions.ErrInvalidFormFields(err.Error())
	}

	existing, err := uc.CustomServiceRepository.FindByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrCustomServiceAlreadyExists(nil, request.ID)
	}

	service := &models.CustomService{
		ID:            request.ID,
		Title:         request.Title,
		Description:   request.Description,
		FormFields:    formFields,
		BaseAmount:    request.BaseAmount,
		ProcessingFee: request.ProcessingFee,
		Enabled:       request.Enabled,
	}
	service.SetCreatedAtUpdatedAt()

	if err := uc.CustomServiceRepository.Create(ctx, service); err != nil {
		uc.Log.Error("customServiceUsecase.CreateCustomService error creating custom service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "custom_service_created", requestID,
		zap.String(constvars.LoggingServiceIDKey, service.ID),
		zap.Bool("enabled", service.Enabled),
	)
	return toCustomServiceResponse(service), nil
}

func (uc *customServiceUsecase) UpdateCustomService(ctx context.Context, serviceID string, request *requests.UpdateCustomService) (*responses.CustomService, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.UpdateCustomService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	formFields := toModelFormFields(request.FormFields)
	if err := catalog.ValidateFormFields(formFields); err != nil {
		return nil, exceptions.ErrInvalidFormFields(err.Error())
	}

	service, err := uc.findExisting(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	service.Title = request.Title
	service.Description = request.Description
	service.FormFields = formFields
	service.BaseAmount = request.BaseAmount
	service.ProcessingFee = request.ProcessingFee
	service.SetUpdatedAt()

	if err := uc.CustomServiceRepository.Update(ctx, service); err != nil {
		uc.Log.Error("customServiceUsecase.UpdateCustomService error updating custom service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("customServiceUsecase.UpdateCustomService succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return toCustomServiceResponse(service), nil
}

func (uc *customServiceUsecase) SetCustomServiceEnabled(ctx context.Context, serviceID string, enabled bool) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.SetCustomServiceEnabled called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
		zap.Bool("enabled", enabled),
	)

	matched, err := uc.CustomServiceRepository.SetEnabled(ctx, serviceID, enabled)
	if err != nil {
		return err
	}
	if !matched {
		return exceptions.ErrServiceNotFound(nil, serviceID)
	}

	utils.LogBusinessEvent(uc.Log, "custom_service_toggled", requestID,
		zap.String(constvars.LoggingServiceIDKey, serviceID),
		zap.Bool("enabled", enabled),
	)
	return nil
}

func (uc *customServiceUsecase) DeleteCustomService(ctx context.Context, serviceID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.DeleteCustomService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	deleted, err := uc.CustomServiceRepository.Delete(ctx, serviceID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrServiceNotFound(nil, serviceID)
	}

	utils.LogBusinessEvent(uc.Log, "custom_service_deleted", requestID,
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	return nil
}

func (uc *customServiceUsecase) UpsertFormConfig(ctx context.Context, serviceID string, request *requests.UpsertFormConfig) (*responses.ServiceConfig, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("customServiceUsecase.UpsertFormConfig called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	formFields := toModelFormFields(request.FormFields)
	if err := catalog.ValidateFormFields(formFields); err != nil {
		return nil, exceptions.ErrInvalidFormFields(err.Error())
	}

	formConfig, err := uc.FormConfigRepository.FindByServiceID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if formConfig == nil {
		formConfig = &models.FormConfig{ServiceID: serviceID}
		formConfig.SetCreatedAtUpdatedAt()
	} else {
		formConfig.SetUpdatedAt()
	}
	formConfig.Title = request.Title
	formConfig.Description = request.Description
	formConfig.FormFields = formFields
	formConfig.BaseAmount = request.BaseAmount
	formConfig.ProcessingFee = request.ProcessingFee

	if err := uc.FormConfigRepository.Upsert(ctx, formConfig); err != nil {
		uc.Log.Error("customServiceUsecase.UpsertFormConfig error saving form config",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("customServiceUsecase.UpsertFormConfig succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return toServiceConfigResponse(formConfig.ToServiceConfig()), nil
}

func (uc *customServiceUsecase) findExisting(ctx context.Context, serviceID string) (*models.CustomService, error) {
	service, err := uc.CustomServiceRepository.FindByID(ctx, serviceID)
	if err != nil {
		uc.Log.Error("customServiceUsecase.findExisting error fetching custom service",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil {
		return nil, exceptions.ErrServiceNotFound(nil, serviceID)
	}
	return service, nil
}
