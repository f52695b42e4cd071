package portalclient

import (
	"context"
	"errors"
	"io"
	"lgu-portal-service/internal/app/models"
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

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 0, zap.NewNop()), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_GetPublicService(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the service configuration", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/public/services/tricycle-franchise", r.URL.Path)
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"id":         "tricycle-franchise",
					"title":      "Tricycle Franchise",
					"formFields": []map[string]interface{}{{"id": "plate", "label": "Plate Number", "type": "text", "required": true}},
					"baseAmount": 350,
				},
			})
		})

		config, err := client.GetPublicService(ctx, "tricycle-franchise")

		require.NoError(t, err)
		assert.Equal(t, "Tricycle Franchise", config.Title)
		assert.Equal(t, 350.0, config.BaseAmount)
		require.Len(t, config.FormFields, 1)
		assert.True(t, config.FormFields[0].Required)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "the requested service could not be found"})
		})

		config, err := client.GetFormConfig(ctx, "unknown")

		assert.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("server errors are reported", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusServiceUnavailable, map[string]interface{}{"success": false, "message": "maintenance"})
		})

		_, err := client.GetPublicService(ctx, "market-stall")

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode)
		assert.Equal(t, "maintenance", customErr.ClientMessage)
	})
}

func TestClient_GetPublicSettings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/public/settings", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"convenienceFee": map[string]interface{}{
					"card": map[string]interface{}{"percent": 2.5, "fixed": 10, "min": 5},
					"qrph": map[string]interface{}{"fixed": 5},
				},
			},
		})
	})

	settings, err := client.GetPublicSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &models.FeeParams{Percent: 2.5, Fixed: 10, Min: 5}, settings.Card)
	assert.Equal(t, &models.FeeParams{Fixed: 5}, settings.QRPH)
	assert.Nil(t, settings.DigitalWallets)
	assert.Nil(t, settings.DOB)
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()
	field := models.FormField{ID: "dtiCertificate", Label: "DTI", Type: models.FieldTypeFile}

	t.Run("authorizes then writes the bytes", func(t *testing.T) {
		var stored []byte
		var storedType string
		storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			storedType = r.Header.Get("Content-Type")
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(storage.Close)

		var authorize requests.AuthorizeUpload
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/uploads/authorize", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&authorize))
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"key":       "services/business-permits/dtiCertificate/abc.pdf",
					"uploadUrl": storage.URL + "/bucket/abc.pdf?X-Amz-Signature=x",
				},
			})
		})

		key, err := client.Upload(ctx, field, models.LocalFile{
			Name:    "dti.pdf",
			Content: []byte("%PDF-1.4\n%test"),
		}, "business-permits")

		require.NoError(t, err)
		assert.Equal(t, "services/business-permits/dtiCertificate/abc.pdf", key)
		assert.Equal(t, "application/pdf", authorize.ContentType)
		assert.Equal(t, "services/business-permits/dtiCertificate", authorize.KeyPrefix)
		assert.Equal(t, int64(14), authorize.MaxBytes)
		assert.Equal(t, "application/pdf", storedType)
		assert.Equal(t, "%PDF-1.4\n%test", string(stored))
	})

	t.Run("storage rejection fails the upload", func(t *testing.T) {
		storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(storage.Close)

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"key": "k", "uploadUrl": storage.URL + "/bucket/k"},
			})
		})

		_, err := client.Upload(ctx, field, models.LocalFile{Name: "a.png", ContentType: "image/png", Content: []byte{1}}, "business-permits")

		assert.Error(t, err)
	})
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "text/plain", detectContentType(models.LocalFile{ContentType: "text/plain; charset=utf-8"}))
	assert.Equal(t, "image/png", detectContentType(models.LocalFile{Content: []byte("\x89PNG\r\n\x1a\n")}))
}

func TestClient_Payments(t *testing.T) {
	ctx := context.Background()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/payments/initiate":
			var request requests.InitiatePayment
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, int64(55000), request.TotalAmountMinor)
			writeJSON(t, w, http.StatusCreated, map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"checkoutUrl": "https://checkout.example/inv-1", "transactionId": "tx-1"},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/payments/tx-1/cancel":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"transactionId": "tx-1", "status": "cancelled"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/payments/tx-1":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"transactionId": "tx-1", "status": "paid", "totalAmountMinor": 55000},
			})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "not found"})
		}
	})

	initiated, err := client.Initiate(ctx, &requests.InitiatePayment{ServiceID: "business-permits", TotalAmountMinor: 55000})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", initiated.TransactionID)

	cancelled, err := client.Cancel(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	transaction, err := client.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "paid", transaction.Status)
	assert.Equal(t, int64(55000), transaction.TotalAmountMinor)

	_, err = client.GetTransaction(ctx, "tx-2")
	assert.Error(t, err)
}
