package utils

import (
	"errors"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildPaginationRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPageSize: 20},
		{name: "explicit values", query: "page=3&page_size=50", wantPage: 3, wantPageSize: 50},
		{name: "page size is capped", query: "page=1&page_size=1000", wantPage: 1, wantPageSize: 100},
		{name: "garbage falls back", query: "page=abc&page_size=-4", wantPage: 1, wantPageSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/transactions?"+tt.query, nil)
			pagination := BuildPaginationRequest(r)
			assert.Equal(t, tt.wantPage, pagination.Page)
			assert.Equal(t, tt.wantPageSize, pagination.PageSize)
		})
	}
}

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("middle page links both ways", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 2, 20, "/api/v1/admin/transactions")
		assert.Equal(t, "/api/v1/admin/transactions?page=3&page_size=20", pagination.NextURL)
		assert.Equal(t, "/api/v1/admin/transactions?page=1&page_size=20", pagination.PrevURL)
	})

	t.Run("last page has no next link", func(t *testing.T) {
		pagination := BuildPaginationResponse(40, 2, 20, "/x")
		assert.Empty(t, pagination.NextURL)
		assert.NotEmpty(t, pagination.PrevURL)
	})
}

func TestValidateUrlParams(t *testing.T) {
	assert.NoError(t, ValidateUrlParamServiceID("business-permit"))
	assert.Error(t, ValidateUrlParamServiceID(""))
	assert.Error(t, ValidateUrlParamServiceID("Business Permit"))
	assert.Error(t, ValidateUrlParamServiceID("-leading-dash"))

	assert.NoError(t, ValidateUrlParamTransactionID("3f1f5c1e-8f0e-4a55-9d0b-6a8f4f3b2c11"))
	assert.Error(t, ValidateUrlParamTransactionID(""))
	assert.Error(t, ValidateUrlParamTransactionID("tx-1"))
}

func TestValidateStruct_InitiatePayment(t *testing.T) {
	valid := func() *requests.InitiatePayment {
		return &requests.InitiatePayment{
			ServiceID:   "business-permit",
			ServiceName: "Business Permit",
			Breakdown: []requests.PaymentBreakdownItem{
				{Code: "base", Label: "Business Permit", AmountMinor: 150000},
				{Code: "convenience_fee", Label: "Convenience fee", AmountMinor: 2050},
			},
			TotalAmountMinor: 152050,
			PaymentMethod:    "card",
			SuccessURL:       "https://portal.example/services/business-permit?step=receipt&success=1",
			CancelURL:        "https://portal.example/services/business-permit?cancel=1&step=payment",
		}
	}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid()))
	})

	t.Run("unknown payment method", func(t *testing.T) {
		request := valid()
		request.PaymentMethod = "cash"
		assert.Error(t, ValidateStruct(request))
	})

	t.Run("unknown breakdown code", func(t *testing.T) {
		request := valid()
		request.Breakdown[1].Code = "tip"
		assert.Error(t, ValidateStruct(request))
	})

	t.Run("malformed service id", func(t *testing.T) {
		request := valid()
		request.ServiceID = "Business_Permit"
		assert.Error(t, ValidateStruct(request))
	})

	t.Run("first validation error is rendered for clients", func(t *testing.T) {
		request := valid()
		request.Breakdown = nil
		err := ValidateStruct(request)
		require.Error(t, err)
		assert.NotEmpty(t, exceptions.FormatFirstValidationError(err))
	})
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, method := range []string{"card", "digital-wallets", "dob", "qrph"} {
		assert.True(t, IsValidPaymentMethod(method), method)
	}
	assert.False(t, IsValidPaymentMethod("gcash"))
}

func TestGenerateObjectKey(t *testing.T) {
	key := GenerateObjectKey("services/business-permit/dti_certificate/", "PDF")
	assert.True(t, strings.HasPrefix(key, "services/business-permit/dti_certificate/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	assert.Equal(t, "services/rpt/tax_dec", GenerateUploadKeyPrefix("rpt", "tax_dec"))
}

func TestBuildErrorResponse(t *testing.T) {
	decode := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("custom error keeps its status and client message", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrTransactionNotFound(nil, "tx-1"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
		assert.NotEmpty(t, body["dev_message"])
	})

	t.Run("production hides dev detail", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrTransactionNotFound(nil, "tx-1"))

		body := decode(t, rec)
		_, hasDev := body["dev_message"]
		assert.False(t, hasDev)
	})

	t.Run("plain error is an internal error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestBuildSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	BuildSuccessResponse(rec, http.StatusCreated, "created", map[string]string{"transactionId": "tx-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "tx-1", body["data"].(map[string]interface{})["transactionId"])
}
