package controllers

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServiceController serves what the portal needs to render a service page.
type ServiceController struct {
	Log                  *zap.Logger
	CustomServiceUsecase contracts.CustomServiceUsecase
	SettingsUsecase      contracts.SettingsUsecase
}

var (
	serviceControllerInstance *ServiceController
	onceServiceController     sync.Once
)

func NewServiceController(logger *zap.Logger, customServiceUsecase contracts.CustomServiceUsecase, settingsUsecase contracts.SettingsUsecase) *ServiceController {
	onceServiceController.Do(func() {
		serviceControllerInstance = &ServiceController{
			Log:                  logger,
			CustomServiceUsecase: customServiceUsecase,
			SettingsUsecase:      settingsUsecase,
		}
	})
	return serviceControllerInstance
}

func (ctrl *ServiceController) GetPublicService(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "ServiceController.GetPublicService")
	if !ok {
		return
	}

	serviceID := chi.URLParam(r, constvars.URLParamServiceID)
	ctrl.Log.Info("ServiceController.GetPublicService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	if err := utils.ValidateUrlParamServiceID(serviceID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamServiceID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.GetPublicServiceConfig(ctx, serviceID)
	if err != nil {
		ctrl.Log.Error("ServiceController.GetPublicService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetServiceConfigSuccessMessage, result)
}

func (ctrl *ServiceController) GetFormConfig(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "ServiceController.GetFormConfig")
	if !ok {
		return
	}

	serviceID := chi.URLParam(r, constvars.URLParamServiceID)
	ctrl.Log.Info("ServiceController.GetFormConfig called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	if err := utils.ValidateUrlParamServiceID(serviceID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamServiceID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.GetFormConfig(ctx, serviceID)
	if err != nil {
		ctrl.Log.Error("ServiceController.GetFormConfig error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetFormConfigSuccessMessage, result)
}

func (ctrl *ServiceController) GetPublicSettings(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "ServiceController.GetPublicSettings")
	if !ok {
		return
	}
	ctrl.Log.Info("ServiceController.GetPublicSettings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.SettingsUsecase.GetPublicSettings(ctx)
	if err != nil {
		ctrl.Log.Error("ServiceController.GetPublicSettings error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPublicSettingsSuccessMessage, result)
}
