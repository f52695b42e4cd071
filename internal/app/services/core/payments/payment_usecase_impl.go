package payments

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const transactionLockTTL = 30 * time.Second

type paymentUsecase struct {
	TransactionRepository contracts.TransactionRepository
	Services              ServiceResolver
	Settings              contracts.SettingsUsecase
	PaymentGateway        contracts.PaymentGatewayService
	EventPublisher        contracts.TransactionEventPublisher
	Locker                contracts.LockerService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	transactionRepository contracts.TransactionRepository,
	services ServiceResolver,
	settingsUsecase contracts.SettingsUsecase,
	paymentGateway contracts.PaymentGatewayService,
	eventPublisher contracts.TransactionEventPublisher,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = newPaymentUsecase(transactionRepository, services, settingsUsecase, paymentGateway, eventPublisher, locker, internalConfig, logger)
	})
	return paymentUsecaseInstance
}

func newPaymentUsecase(
	transactionRepository contracts.TransactionRepository,
	services ServiceResolver,
	settingsUsecase contracts.SettingsUsecase,
	paymentGateway contracts.PaymentGatewayService,
	eventPublisher contracts.TransactionEventPublisher,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *paymentUsecase {
	return &paymentUsecase{
		TransactionRepository: transactionRepository,
		Services:              services,
		Settings:              settingsUsecase,
		PaymentGateway:        paymentGateway,
		EventPublisher:        eventPublisher,
		Locker:                locker,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

// InitiatePayment records a pending transaction, opens a gateway invoice for
// it and returns the hosted checkout URL.
func (uc *paymentUsecase) InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
		zap.Int64(constvars.LoggingTotalAmountMinorKey, request.TotalAmountMinor),
	)

	if err := validateBreakdown(request.Breakdown, request.TotalAmountMinor); err != nil {
		return nil, err
	}
	if !uc.isMethodEnabled(request.PaymentMethod) {
		return nil, exceptions.ErrClientCustomMessage(fmt.Errorf("payment method %s is not available", request.PaymentMethod))
	}

	resolution := uc.Services.Resolve(ctx, request.ServiceID)
	if !resolution.Found() {
		return nil, exceptions.ErrServiceNotFound(nil, request.ServiceID)
	}
	expected, err := uc.expectedCharges(ctx, resolution.Config, request)
	if err != nil {
		return nil, err
	}
	if err := verifyCharges(request.Breakdown, expected); err != nil {
		utils.LogSecurityEvent(uc.Log, "payment_price_mismatch", requestID, "medium",
			zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
			zap.Error(err),
		)
		return nil, err
	}

	transaction := &models.Transaction{
		ID:               uuid.NewString(),
		ServiceID:        request.ServiceID,
		ServiceName:      request.ServiceName,
		PaymentMethod:    request.PaymentMethod,
		Breakdown:        toModelBreakdown(request.Breakdown),
		TotalAmountMinor: request.TotalAmountMinor,
		Currency:         constvars.PaymentCurrencyPHP,
		FormData:         request.FormData,
		Status:           models.TransactionStatusPending,
		SuccessURL:       request.SuccessURL,
		CancelURL:        request.CancelURL,
	}
	transaction.SetCreatedAtUpdatedAt()

	if err := uc.TransactionRepository.Create(ctx, transaction); err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error creating transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Log.Info("paymentUsecase.InitiatePayment transaction created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
	)

	invoiceRequest, err := uc.buildInvoiceRequest(transaction)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	invoice, err := uc.PaymentGateway.CreateInvoice(ctx, invoiceRequest)
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error creating invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.Error(err),
		)
		transaction.Status = models.TransactionStatusFailed
		transaction.FailureReason = err.Error()
		transaction.SetUpdatedAt()
		if updateErr := uc.TransactionRepository.Update(ctx, transaction); updateErr != nil {
			uc.Log.Error("paymentUsecase.InitiatePayment error marking transaction failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(updateErr),
			)
		}
		uc.publishEvent(ctx, transaction, constvars.EventTransactionFailed)
		return nil, err
	}

	transaction.InvoiceID = invoice.ID
	transaction.CheckoutURL = invoice.InvoiceURL
	transaction.Status = models.TransactionStatusAwaitingPayment
	transaction.SetUpdatedAt()
	if err := uc.TransactionRepository.Update(ctx, transaction); err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error updating transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, transaction, constvars.EventTransactionCreated)
	utils.LogBusinessEvent(uc.Log, "payment_initiated", requestID,
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
		zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
		zap.Int64(constvars.LoggingTotalAmountMinorKey, transaction.TotalAmountMinor),
	)

	return &responses.InitiatePayment{
		CheckoutURL:   transaction.CheckoutURL,
		TransactionID: transaction.ID,
	}, nil
}

// CancelPayment cancels an open transaction. Closed transactions are
// returned unchanged so repeated cancels are harmless.
func (uc *paymentUsecase) CancelPayment(ctx context.Context, transactionID string) (*responses.CancelPayment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.CancelPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	var result *responses.CancelPayment
	err := uc.withTransactionLock(ctx, transactionID, func() error {
		transaction, err := uc.findTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if !transaction.Status.IsOpen() {
			uc.Log.Info("paymentUsecase.CancelPayment transaction already closed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionStatusKey, string(transaction.Status)),
			)
			result = &responses.CancelPayment{TransactionID: transaction.ID, Status: string(transaction.Status)}
			return nil
		}

		uc.expireInvoice(ctx, transaction)
		transaction.Status = models.TransactionStatusCancelled
		transaction.SetUpdatedAt()
		if err := uc.TransactionRepository.Update(ctx, transaction); err != nil {
			return err
		}

		uc.publishEvent(ctx, transaction, constvars.EventTransactionCancelled)
		result = &responses.CancelPayment{TransactionID: transaction.ID, Status: string(transaction.Status)}
		return nil
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.CancelPayment error cancelling transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CancelPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionStatusKey, result.Status),
	)
	return result, nil
}

func (uc *paymentUsecase) GetTransaction(ctx context.Context, transactionID string) (*responses.Transaction, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.GetTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	transaction, err := uc.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(transaction), nil
}

func (uc *paymentUsecase) ListTransactions(ctx context.Context, request *requests.ListTransactions) ([]responses.Transaction, int64, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.ListTransactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageKey, request.Page),
		zap.Int(constvars.LoggingPageSizeKey, request.PageSize),
	)

	transactions, total, err := uc.TransactionRepository.FindAll(ctx, models.TransactionFilter{
		Status:    models.TransactionStatus(request.Status),
		ServiceID: request.ServiceID,
		Page:      request.Page,
		PageSize:  request.PageSize,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.ListTransactions error fetching transactions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	result := make([]responses.Transaction, 0, len(transactions))
	for i := range transactions {
		result = append(result, *toTransactionResponse(&transactions[i]))
	}
	return result, total, nil
}

func (uc *paymentUsecase) findTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	transaction, err := uc.TransactionRepository.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil, transactionID)
	}
	return transaction, nil
}

// withTransactionLock serialises state changes of one transaction across
// instances.
func (uc *paymentUsecase) withTransactionLock(ctx context.Context, transactionID string, fn func() error) error {
	lockKey := fmt.Sprintf(constvars.RedisKeyTransactionLockFmt, transactionID)
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, transactionLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrTransactionBusy(lockKey)
	}
	defer func() {
		if err := uc.Locker.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("paymentUsecase.withTransactionLock error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()
	return fn()
}

// expireInvoice closes the gateway invoice. The transaction is closed on our
// side regardless of the outcome.
func (uc *paymentUsecase) expireInvoice(ctx context.Context, transaction *models.Transaction) {
	if transaction.InvoiceID == "" {
		return
	}
	if _, err := uc.PaymentGateway.ExpireInvoice(ctx, transaction.InvoiceID); err != nil {
		uc.Log.Warn("paymentUsecase.expireInvoice gateway refused to expire invoice",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingInvoiceIDKey, transaction.InvoiceID),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) publishEvent(ctx context.Context, transaction *models.Transaction, eventType string) {
	if uc.EventPublisher == nil {
		return
	}

	event := &models.TransactionEvent{
		EventType:        eventType,
		TransactionID:    transaction.ID,
		ServiceID:        transaction.ServiceID,
		Status:           transaction.Status,
		PaymentMethod:    transaction.PaymentMethod,
		TotalAmountMinor: transaction.TotalAmountMinor,
		OccurredAt:       uc.now().UTC(),
	}
	if err := uc.EventPublisher.PublishTransactionEvent(ctx, event); err != nil {
		uc.Log.Warn("paymentUsecase.publishEvent error publishing transaction event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) isMethodEnabled(method string) bool {
	enabled := uc.InternalConfig.PaymentGateway.EnabledPaymentMethods
	if len(enabled) == 0 {
		return true
	}
	for _, candidate := range enabled {
		if candidate == method {
			return true
		}
	}
	return false
}
