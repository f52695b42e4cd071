package contracts

import (
	"context"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error)
	CancelPayment(ctx context.Context, transactionID string) (*responses.CancelPayment, error)
	GetTransaction(ctx context.Context, transactionID string) (*responses.Transaction, error)
	ListTransactions(ctx context.Context, request *requests.ListTransactions) ([]responses.Transaction, int64, error)
	HandleGatewayCallback(ctx context.Context, header *requests.GatewayCallbackHeader, body *requests.GatewayCallbackBody) error
	ExpireStaleTransactions(ctx context.Context) (int, error)
}
