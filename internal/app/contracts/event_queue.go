package contracts

import (
	"context"
	"lgu-portal-service/internal/app/models"
)

type TransactionEventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event *models.TransactionEvent) error
}
