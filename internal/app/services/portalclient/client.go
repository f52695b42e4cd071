// Package portalclient is the HTTP client the payment stepper uses to talk
// to the portal backend. One Client serves service lookup, settings, uploads
// and payments.
package portalclient

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	publicServicePath   = "/api/v1/public/services/{serviceId}"
	formConfigPath      = "/api/v1/forms/{serviceId}"
	publicSettingsPath  = "/api/v1/public/settings"
	authorizeUploadPath = "/api/v1/uploads/authorize"
	initiatePaymentPath = "/api/v1/payments/initiate"
	cancelPaymentPath   = "/api/v1/payments/{transactionId}/cancel"
	transactionPath     = "/api/v1/payments/{transactionId}"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Client struct {
	api     *resty.Client
	storage *resty.Client
	Log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	api := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	api.JSONMarshal = json.Marshal
	api.JSONUnmarshal = json.Unmarshal

	// Presigned URLs carry their own authorization and must not inherit the
	// API base URL or headers.
	storage := resty.New().SetTimeout(timeout)

	return &Client{api: api, storage: storage, Log: logger}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.api.R().SetContext(ctx).SetError(new(errorEnvelope))
	if requestID := utils.GetRequestID(ctx); requestID != "" {
		req.SetHeader(constvars.HeaderXRequestID, requestID)
	}
	return req
}

// checkResponse turns a transport error or a non 2xx response into a
// CustomError carrying the backend message when there is one.
func checkResponse(resp *resty.Response, err error, target string) error {
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	if resp.IsSuccess() {
		return nil
	}

	message := constvars.ErrClientSomethingWrongWithApplication
	if backendErr, ok := resp.Error().(*errorEnvelope); ok && backendErr.Message != "" {
		message = backendErr.Message
	}
	return exceptions.ErrUnexpectedStatusCode(resp.StatusCode(), target, message)
}

func targetOf(method, path string) string {
	return fmt.Sprintf("%s %s", method, path)
}
