package payment_gateway

import (
	"context"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(baseURL string) *invoiceGateway {
	cfg := &config.InternalConfig{
		PaymentGateway: config.AppPaymentGateway{
			BaseUrl:                 baseURL,
			ApiKey:                  "xnd_development_key",
			RequestTimeoutInSeconds: 5,
			RequestsPerSecond:       100,
		},
	}
	return NewInvoiceGateway(cfg, zap.NewNop()).(*invoiceGateway)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestInvoiceGateway_CreateInvoice(t *testing.T) {
	invoiceRequest := &requests.GatewayCreateInvoice{
		ExternalID:         "tx-1",
		Amount:             1520.5,
		Currency:           "PHP",
		Description:        "Business Permit",
		InvoiceDuration:    3600,
		SuccessRedirectURL: "https://portal.example/services/business-permit?step=receipt&success=1&transactionId=tx-1",
		FailureRedirectURL: "https://portal.example/services/business-permit?cancel=1&step=payment&transactionId=tx-1",
		PaymentMethods:     []string{"CREDIT_CARD"},
	}

	t.Run("posts the invoice with basic auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, createInvoicePath, r.URL.Path)

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "xnd_development_key", username)
			assert.Empty(t, password)

			var body requests.GatewayCreateInvoice
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "tx-1", body.ExternalID)
			assert.Equal(t, 1520.5, body.Amount)
			assert.Equal(t, []string{"CREDIT_CARD"}, body.PaymentMethods)

			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id":          "inv-1",
				"external_id": "tx-1",
				"status":      "PENDING",
				"amount":      1520.5,
				"currency":    "PHP",
				"invoice_url": "https://checkout.example/inv-1",
			})
		}))
		defer server.Close()

		invoice, err := newTestGateway(server.URL).CreateInvoice(context.Background(), invoiceRequest)
		require.NoError(t, err)
		assert.Equal(t, "inv-1", invoice.ID)
		assert.Equal(t, "https://checkout.example/inv-1", invoice.InvoiceURL)
	})

	t.Run("gateway rejection becomes bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error_code": "API_VALIDATION_ERROR",
				"message":    "amount must be positive",
			})
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).CreateInvoice(context.Background(), invoiceRequest)
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
		assert.Contains(t, customErr.Error(), "API_VALIDATION_ERROR")
	})

	t.Run("missing invoice url is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"id": "inv-1", "status": "PENDING"})
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).CreateInvoice(context.Background(), invoiceRequest)
		assert.Error(t, err)
	})

	t.Run("cancelled context stops before sending", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestGateway(server.URL).CreateInvoice(ctx, invoiceRequest)
		assert.Error(t, err)
		assert.Zero(t, calls)
	})
}

func TestInvoiceGateway_ExpireInvoice(t *testing.T) {
	t.Run("expires by invoice id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/invoices/inv-1/expire!", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]string{"id": "inv-1", "status": "EXPIRED"})
		}))
		defer server.Close()

		invoice, err := newTestGateway(server.URL).ExpireInvoice(context.Background(), "inv-1")
		require.NoError(t, err)
		assert.Equal(t, "EXPIRED", invoice.Status)
	})

	t.Run("already paid invoice is refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error_code": "INVOICE_NOT_FOUND_ERROR",
				"message":    "invoice not found",
			})
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).ExpireInvoice(context.Background(), "inv-404")
		assert.Error(t, err)
	})
}
