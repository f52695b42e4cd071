package payments

import (
	"context"
	"crypto/subtle"
	"errors"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// HandleGatewayCallback applies an invoice status change reported by the
// gateway. Replayed callbacks leave the transaction untouched.
func (uc *paymentUsecase) HandleGatewayCallback(ctx context.Context, header *requests.GatewayCallbackHeader, body *requests.GatewayCallbackBody) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.HandleGatewayCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, body.ExternalID),
		zap.String(constvars.LoggingInvoiceIDKey, body.ID),
		zap.String(constvars.LoggingGatewayStatusKey, string(body.Status)),
	)

	if !uc.isValidCallbackToken(header.CallbackToken) {
		utils.LogSecurityEvent(uc.Log, "invalid_gateway_callback_token", requestID, "high",
			zap.String(constvars.LoggingTransactionIDKey, body.ExternalID),
		)
		return exceptions.ErrInvalidCallbackToken(errors.New(constvars.ErrDevInvalidCallbackToken))
	}

	return uc.withTransactionLock(ctx, body.ExternalID, func() error {
		transaction, err := uc.findTransaction(ctx, body.ExternalID)
		if err != nil {
			return err
		}

		nextStatus, ok := uc.nextStatus(ctx, transaction, body.Status)
		if !ok {
			uc.Log.Info("paymentUsecase.HandleGatewayCallback no status change",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionStatusKey, string(transaction.Status)),
				zap.String(constvars.LoggingGatewayStatusKey, string(body.Status)),
			)
			return nil
		}

		transaction.Status = nextStatus
		if transaction.InvoiceID == "" {
			transaction.InvoiceID = body.ID
		}
		if nextStatus == models.TransactionStatusPaid {
			paidAt := uc.paidAt(body.PaidAt)
			transaction.PaidAt = &paidAt
		}
		transaction.SetUpdatedAt()

		if err := uc.TransactionRepository.Update(ctx, transaction); err != nil {
			uc.Log.Error("paymentUsecase.HandleGatewayCallback error updating transaction",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}

		uc.publishEvent(ctx, transaction, eventForStatus(nextStatus))
		utils.LogBusinessEvent(uc.Log, "payment_status_changed", requestID,
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.String(constvars.LoggingTransactionStatusKey, string(nextStatus)),
		)
		return nil
	})
}

func (uc *paymentUsecase) isValidCallbackToken(token string) bool {
	expected := uc.InternalConfig.PaymentGateway.CallbackToken
	if expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

// nextStatus maps a gateway invoice status onto the transaction. A payment
// confirmation always wins because the money has already moved.
func (uc *paymentUsecase) nextStatus(ctx context.Context, transaction *models.Transaction, gatewayStatus requests.GatewayInvoiceStatus) (models.TransactionStatus, bool) {
	switch gatewayStatus {
	case requests.GatewayInvoiceStatusPaid, requests.GatewayInvoiceStatusSettled:
		if transaction.Status == models.TransactionStatusPaid {
			return "", false
		}
		if !transaction.Status.IsOpen() {
			uc.Log.Warn("paymentUsecase.nextStatus payment received for closed transaction",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
				zap.String(constvars.LoggingTransactionStatusKey, string(transaction.Status)),
			)
		}
		return models.TransactionStatusPaid, true
	case requests.GatewayInvoiceStatusExpired:
		if !transaction.Status.IsOpen() {
			return "", false
		}
		return models.TransactionStatusExpired, true
	case requests.GatewayInvoiceStatusFailed:
		if !transaction.Status.IsOpen() {
			return "", false
		}
		return models.TransactionStatusFailed, true
	default:
		return "", false
	}
}

func (uc *paymentUsecase) paidAt(reported *string) time.Time {
	if reported != nil {
		if parsed, err := time.Parse(time.RFC3339, *reported); err == nil {
			return parsed.UTC()
		}
	}
	return uc.now().UTC()
}

func eventForStatus(status models.TransactionStatus) string {
	switch status {
	case models.TransactionStatusPaid:
		return constvars.EventTransactionPaid
	case models.TransactionStatusCancelled:
		return constvars.EventTransactionCancelled
	case models.TransactionStatusExpired:
		return constvars.EventTransactionExpired
	default:
		return constvars.EventTransactionFailed
	}
}

// ExpireStaleTransactions closes open transactions older than the payment
// window and returns how many were expired.
func (uc *paymentUsecase) ExpireStaleTransactions(ctx context.Context) (int, error) {
	requestID := utils.GetRequestID(ctx)
	window := time.Duration(uc.InternalConfig.PaymentGateway.PaymentExpiredTimeInMinutes) * time.Minute
	cutoff := uc.now().Add(-window)
	uc.Log.Info("paymentUsecase.ExpireStaleTransactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("cutoff", cutoff),
	)

	batchSize := uc.InternalConfig.Workers.ExpiryBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	candidates, err := uc.TransactionRepository.FindOpenCreatedBefore(ctx, cutoff, batchSize)
	if err != nil {
		uc.Log.Error("paymentUsecase.ExpireStaleTransactions error fetching candidates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	expired := 0
	for _, candidate := range candidates {
		err := uc.withTransactionLock(ctx, candidate.ID, func() error {
			transaction, err := uc.findTransaction(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if !transaction.Status.IsOpen() {
				return nil
			}

			uc.expireInvoice(ctx, transaction)
			transaction.Status = models.TransactionStatusExpired
			transaction.SetUpdatedAt()
			if err := uc.TransactionRepository.Update(ctx, transaction); err != nil {
				return err
			}
			uc.publishEvent(ctx, transaction, constvars.EventTransactionExpired)
			expired++
			return nil
		})
		if err != nil {
			uc.Log.Warn("paymentUsecase.ExpireStaleTransactions skipped transaction",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionIDKey, candidate.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("paymentUsecase.ExpireStaleTransactions succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, expired),
	)
	return expired, nil
}
