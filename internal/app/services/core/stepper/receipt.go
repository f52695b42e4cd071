package stepper

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// loadReceipt moves the session to the receipt step and fetches the
// transaction. On failure the session stays on receipt without a receipt.
func (s *Stepper) loadReceipt(ctx context.Context, transactionID string) error {
	transaction, err := s.deps.Payments.GetTransaction(ctx, transactionID)
	s.showReceipt(transactionID, transaction)

	if err != nil {
		s.deps.Log.Error("Stepper.loadReceipt error fetching transaction",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrReceiptFailed, err)
	}
	return nil
}

// cancelAndShowReceipt handles a cancelled checkout. The cancel call is
// awaited but its outcome never blocks the move to receipt.
func (s *Stepper) cancelAndShowReceipt(ctx context.Context, transactionID string) error {
	requestID := utils.GetRequestID(ctx)
	if transactionID == "" {
		s.showReceipt("", nil)
		return nil
	}

	cancelled, err := s.deps.Payments.Cancel(ctx, transactionID)
	if err != nil {
		s.deps.Log.Warn("Stepper cancel on return failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
			zap.Error(err),
		)
	}

	transaction, err := s.deps.Payments.GetTransaction(ctx, transactionID)
	if err != nil {
		s.deps.Log.Warn("Stepper receipt lookup after cancel failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
			zap.Error(err),
		)
		if cancelled != nil {
			transaction = &responses.Transaction{
				TransactionID: cancelled.TransactionID,
				Status:        cancelled.Status,
			}
		}
	}

	s.showReceipt(transactionID, transaction)
	return nil
}

func (s *Stepper) showReceipt(transactionID string, transaction *responses.Transaction) {
	s.mu.Lock()
	s.transactionID = transactionID
	s.receipt = transaction
	s.completed[StepForm] = true
	s.completed[StepReview] = true
	s.completed[StepPayment] = true
	s.current = StepReceipt
	s.mu.Unlock()

	s.publishLocation()
}

// cancelDetached cancels a transaction the session no longer tracks without
// waiting for the result. The call outlives ctx cancellation.
func (s *Stepper) cancelDetached(ctx context.Context, transactionID string) {
	requestID := utils.GetRequestID(ctx)
	detached := context.WithoutCancel(ctx)

	s.background.Add(1)
	go func() {
		defer s.background.Done()

		if _, err := s.deps.Payments.Cancel(detached, transactionID); err != nil {
			s.deps.Log.Warn("Stepper background cancel failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionIDKey, transactionID),
				zap.Error(err),
			)
			return
		}
		s.deps.Log.Info("Stepper background cancel succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
		)
	}()
}
