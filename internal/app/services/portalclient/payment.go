package portalclient

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

func (c *Client) Initiate(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("Client.Initiate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.Int64(constvars.LoggingTotalAmountMinorKey, request.TotalAmountMinor),
	)

	result := new(envelope[responses.InitiatePayment])
	resp, err := c.request(ctx).
		SetBody(request).
		SetResult(result).
		Post(initiatePaymentPath)
	if err := checkResponse(resp, err, targetOf(http.MethodPost, initiatePaymentPath)); err != nil {
		c.Log.Error("Client.Initiate error initiating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if result.Data.CheckoutURL == "" || result.Data.TransactionID == "" {
		return nil, fmt.Errorf("initiate response is missing checkoutUrl or transactionId")
	}

	c.Log.Info("Client.Initiate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, result.Data.TransactionID),
	)
	return &result.Data, nil
}

func (c *Client) Cancel(ctx context.Context, transactionID string) (*responses.CancelPayment, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("Client.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	result := new(envelope[responses.CancelPayment])
	resp, err := c.request(ctx).
		SetPathParam("transactionId", transactionID).
		SetResult(result).
		Patch(cancelPaymentPath)
	if err := checkResponse(resp, err, targetOf(http.MethodPatch, cancelPaymentPath)); err != nil {
		c.Log.Error("Client.Cancel error cancelling payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("Client.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionStatusKey, result.Data.Status),
	)
	return &result.Data, nil
}

func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*responses.Transaction, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("Client.GetTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	result := new(envelope[responses.Transaction])
	resp, err := c.request(ctx).
		SetPathParam("transactionId", transactionID).
		SetResult(result).
		Get(transactionPath)
	if err := checkResponse(resp, err, targetOf(http.MethodGet, transactionPath)); err != nil {
		c.Log.Error("Client.GetTransaction error fetching transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("Client.GetTransaction succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionStatusKey, result.Data.Status),
	)
	return &result.Data, nil
}
