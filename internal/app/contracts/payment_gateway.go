package contracts

import (
	"context"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreateInvoice(ctx context.Context, request *requests.GatewayCreateInvoice) (*responses.GatewayInvoice, error)
	ExpireInvoice(ctx context.Context, invoiceID string) (*responses.GatewayInvoice, error)
}
