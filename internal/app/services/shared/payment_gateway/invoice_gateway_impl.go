package payment_gateway

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	createInvoicePath = "/v2/invoices"
	expireInvoicePath = "/invoices/%s/expire!"
)

type invoiceGateway struct {
	client  *resty.Client
	limiter *rate.Limiter
	Log     *zap.Logger
}

// NewInvoiceGateway talks to a hosted-invoice payment gateway. Outbound calls
// are throttled so bursts of checkouts do not trip the provider's rate limit.
func NewInvoiceGateway(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	gatewayConfig := internalConfig.PaymentGateway

	timeout := time.Duration(gatewayConfig.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(gatewayConfig.BaseUrl, "/")).
		SetTimeout(timeout).
		SetBasicAuth(gatewayConfig.ApiKey, "").
		SetHeader(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	requestsPerSecond := gatewayConfig.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &invoiceGateway{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)+1),
		Log:     logger,
	}
}

func (g *invoiceGateway) CreateInvoice(ctx context.Context, request *requests.GatewayCreateInvoice) (*responses.GatewayInvoice, error) {
	requestID := utils.GetRequestID(ctx)
	g.Log.Info("invoiceGateway.CreateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, request.ExternalID),
	)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPaymentGatewayCreateInvoice(err)
	}

	invoice := new(responses.GatewayInvoice)
	gatewayErr := new(responses.GatewayError)
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader(constvars.HeaderXRequestID, requestID).
		SetBody(request).
		SetResult(invoice).
		SetError(gatewayErr).
		Post(createInvoicePath)
	if err != nil {
		g.Log.Error("invoiceGateway.CreateInvoice error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayCreateInvoice(err)
	}

	if resp.IsError() {
		err := fmt.Errorf("status %d: %s %s", resp.StatusCode(), gatewayErr.ErrorCode, gatewayErr.Message)
		g.Log.Error("invoiceGateway.CreateInvoice gateway rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayCreateInvoice(err)
	}

	if invoice.InvoiceURL == "" {
		return nil, exceptions.ErrPaymentGatewayCreateInvoice(fmt.Errorf("gateway response has no invoice url"))
	}

	g.Log.Info("invoiceGateway.CreateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
	)
	return invoice, nil
}

func (g *invoiceGateway) ExpireInvoice(ctx context.Context, invoiceID string) (*responses.GatewayInvoice, error) {
	requestID := utils.GetRequestID(ctx)
	g.Log.Info("invoiceGateway.ExpireInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPaymentGatewayExpireInvoice(err)
	}

	invoice := new(responses.GatewayInvoice)
	gatewayErr := new(responses.GatewayError)
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader(constvars.HeaderXRequestID, requestID).
		SetResult(invoice).
		SetError(gatewayErr).
		Post(fmt.Sprintf(expireInvoicePath, url.PathEscape(invoiceID)))
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayExpireInvoice(err)
	}

	if resp.IsError() {
		err := fmt.Errorf("status %d: %s %s", resp.StatusCode(), gatewayErr.ErrorCode, gatewayErr.Message)
		g.Log.Warn("invoiceGateway.ExpireInvoice gateway rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayExpireInvoice(err)
	}

	g.Log.Info("invoiceGateway.ExpireInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
		zap.String(constvars.LoggingGatewayStatusKey, invoice.Status),
	)
	return invoice, nil
}
