package controllers

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminController backs the LGU back office: custom services, form
// configurations, fee settings and the transaction ledger.
type AdminController struct {
	Log                  *zap.Logger
	CustomServiceUsecase contracts.CustomServiceUsecase
	SettingsUsecase      contracts.SettingsUsecase
	PaymentUsecase       contracts.PaymentUsecase
}

var (
	adminControllerInstance *AdminController
	onceAdminController     sync.Once
)

func NewAdminController(
	logger *zap.Logger,
	customServiceUsecase contracts.CustomServiceUsecase,
	settingsUsecase contracts.SettingsUsecase,
	paymentUsecase contracts.PaymentUsecase,
) *AdminController {
	onceAdminController.Do(func() {
		adminControllerInstance = &AdminController{
			Log:                  logger,
			CustomServiceUsecase: customServiceUsecase,
			SettingsUsecase:      settingsUsecase,
			PaymentUsecase:       paymentUsecase,
		}
	})
	return adminControllerInstance
}

func (ctrl *AdminController) ListCustomServices(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "AdminController.ListCustomServices")
	if !ok {
		return
	}
	ctrl.Log.Info("AdminController.ListCustomServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, total, err := ctrl.CustomServiceUsecase.ListCustomServices(ctx, pagination)
	if err != nil {
		ctrl.Log.Error("AdminController.ListCustomServices error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	paginationData := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListCustomServicesSuccessMessage, paginationData, result)
}

func (ctrl *AdminController) GetCustomService(w http.ResponseWriter, r *http.Request) {
	requestID, serviceID, ok := ctrl.serviceIDParam(w, r, "AdminController.GetCustomService")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.GetCustomService(ctx, serviceID)
	if err != nil {
		ctrl.Log.Error("AdminController.GetCustomService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetServiceConfigSuccessMessage, result)
}

func (ctrl *AdminController) CreateCustomService(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "AdminController.CreateCustomService")
	if !ok {
		return
	}
	ctrl.Log.Info("AdminController.CreateCustomService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateCustomService)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "AdminController.CreateCustomService", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.CreateCustomService(ctx, request)
	if err != nil {
		ctrl.Log.Error("AdminController.CreateCustomService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCustomServiceSuccessMessage, result)
}

func (ctrl *AdminController) UpdateCustomService(w http.ResponseWriter, r *http.Request) {
	requestID, serviceID, ok := ctrl.serviceIDParam(w, r, "AdminController.UpdateCustomService")
	if !ok {
		return
	}

	request := new(requests.UpdateCustomService)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "AdminController.UpdateCustomService", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.UpdateCustomService(ctx, serviceID, request)
	if err != nil {
		ctrl.Log.Error("AdminController.UpdateCustomService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateCustomServiceSuccessMessage, result)
}

func (ctrl *AdminController) EnableCustomService(w http.ResponseWriter, r *http.Request) {
	ctrl.setCustomServiceEnabled(w, r, true)
}

func (ctrl *AdminController) DisableCustomService(w http.ResponseWriter, r *http.Request) {
	ctrl.setCustomServiceEnabled(w, r, false)
}

func (ctrl *AdminController) setCustomServiceEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	requestID, serviceID, ok := ctrl.serviceIDParam(w, r, "AdminController.setCustomServiceEnabled")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	if err := ctrl.CustomServiceUsecase.SetCustomServiceEnabled(ctx, serviceID, enabled); err != nil {
		ctrl.Log.Error("AdminController.setCustomServiceEnabled error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Bool("enabled", enabled),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateCustomServiceSuccessMessage, map[string]interface{}{
		"id":      serviceID,
		"enabled": enabled,
	})
}

func (ctrl *AdminController) DeleteCustomService(w http.ResponseWriter, r *http.Request) {
	requestID, serviceID, ok := ctrl.serviceIDParam(w, r, "AdminController.DeleteCustomService")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	if err := ctrl.CustomServiceUsecase.DeleteCustomService(ctx, serviceID); err != nil {
		ctrl.Log.Error("AdminController.DeleteCustomService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteCustomServiceSuccessMessage, nil)
}

func (ctrl *AdminController) UpsertFormConfig(w http.ResponseWriter, r *http.Request) {
	requestID, serviceID, ok := ctrl.serviceIDParam(w, r, "AdminController.UpsertFormConfig")
	if !ok {
		return
	}

	request := new(requests.UpsertFormConfig)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "AdminController.UpsertFormConfig", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.CustomServiceUsecase.UpsertFormConfig(ctx, serviceID, request)
	if err != nil {
		ctrl.Log.Error("AdminController.UpsertFormConfig error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpsertFormConfigSuccessMessage, result)
}

func (ctrl *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "AdminController.UpdateSettings")
	if !ok {
		return
	}
	ctrl.Log.Info("AdminController.UpdateSettings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpdateSettings)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "AdminController.UpdateSettings", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.SettingsUsecase.UpdateSettings(ctx, request)
	if err != nil {
		ctrl.Log.Error("AdminController.UpdateSettings error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "fee_settings_updated", requestID,
		zap.Any(constvars.LoggingSubjectKey, r.Context().Value(constvars.CONTEXT_ADMIN_SUBJECT_KEY)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateSettingsSuccessMessage, result)
}

func (ctrl *AdminController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "AdminController.ListTransactions")
	if !ok {
		return
	}
	ctrl.Log.Info("AdminController.ListTransactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
	)

	query := r.URL.Query()
	request := &requests.ListTransactions{
		Pagination: *utils.BuildPaginationRequest(r),
		Status:     query.Get(constvars.URLQueryParamStatus),
		ServiceID:  query.Get(constvars.URLQueryParamServiceID),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, total, err := ctrl.PaymentUsecase.ListTransactions(ctx, request)
	if err != nil {
		ctrl.Log.Error("AdminController.ListTransactions error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	paginationData := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListTransactionsSuccessMessage, paginationData, result)
}

func (ctrl *AdminController) serviceIDParam(w http.ResponseWriter, r *http.Request, caller string) (string, string, bool) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, caller)
	if !ok {
		return "", "", false
	}

	serviceID := chi.URLParam(r, constvars.URLParamServiceID)
	ctrl.Log.Info(caller+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	if err := utils.ValidateUrlParamServiceID(serviceID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamServiceID))
		return "", "", false
	}
	return requestID, serviceID, true
}
