package contracts

import (
	"context"
	"lgu-portal-service/internal/app/models"
	"time"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, transactionID string) (*models.Transaction, error)
	FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int64, error)
	FindOpenCreatedBefore(ctx context.Context, before time.Time, limit int) ([]models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
}
