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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	initiatePaymentTimeout = 60 * time.Second
	callbackTimeout        = 10 * time.Second
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "PaymentController.InitiatePayment")
	if !ok {
		return
	}
	ctrl.Log.Info("PaymentController.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.InitiatePayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "PaymentController.InitiatePayment", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), initiatePaymentTimeout)
	defer cancel()

	result, err := ctrl.PaymentUsecase.InitiatePayment(ctx, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.InitiatePayment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.InitiatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, result.TransactionID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InitiatePaymentSuccessMessage, result)
}

func (ctrl *PaymentController) CancelPayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "PaymentController.CancelPayment")
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, constvars.URLParamTransactionID)
	ctrl.Log.Info("PaymentController.CancelPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)
	if err := utils.ValidateUrlParamTransactionID(transactionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamTransactionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.PaymentUsecase.CancelPayment(ctx, transactionID)
	if err != nil {
		ctrl.Log.Error("PaymentController.CancelPayment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelPaymentSuccessMessage, result)
}

func (ctrl *PaymentController) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "PaymentController.GetTransaction")
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, constvars.URLParamTransactionID)
	ctrl.Log.Info("PaymentController.GetTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)
	if err := utils.ValidateUrlParamTransactionID(transactionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamTransactionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.PaymentUsecase.GetTransaction(ctx, transactionID)
	if err != nil {
		ctrl.Log.Error("PaymentController.GetTransaction error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTransactionSuccessMessage, result)
}

// GatewayCallback receives invoice status webhooks from the payment gateway.
func (ctrl *PaymentController) GatewayCallback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "PaymentController.GatewayCallback")
	if !ok {
		return
	}

	utils.LogSecurityEvent(ctrl.Log, "gateway_callback_received", requestID, "info",
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	callbackToken := r.Header.Get(constvars.HeaderCallbackToken)
	if callbackToken == "" {
		ctrl.Log.Error("PaymentController.GatewayCallback missing callback token header",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidCallbackToken(nil))
		return
	}

	header := &requests.GatewayCallbackHeader{
		CallbackToken: callbackToken,
		WebhookID:     r.Header.Get(constvars.HeaderWebhookID),
	}

	raw, err := rawBody(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
		return
	}

	body := new(requests.GatewayCallbackBody)
	if err := json.Unmarshal(raw, body); err != nil {
		ctrl.Log.Error("PaymentController.GatewayCallback failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Int(constvars.LoggingByteSizeKey, len(raw)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), callbackTimeout)
	defer cancel()

	if err := ctrl.PaymentUsecase.HandleGatewayCallback(ctx, header, body); err != nil {
		ctrl.Log.Error("PaymentController.GatewayCallback failed to process callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, body.ID),
			zap.String(constvars.LoggingGatewayStatusKey, string(body.Status)),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "gateway_callback_processed", requestID,
		zap.String(constvars.LoggingInvoiceIDKey, body.ID),
		zap.String(constvars.LoggingGatewayStatusKey, string(body.Status)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentCallbackSuccessfullyProcessed, body.Status)
}
