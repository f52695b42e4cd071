package controllers

import (
	"context"
	"lgu-portal-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publishRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func TestRawBody(t *testing.T) {
	t.Run("buffered body is taken from the context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", http.NoBody)
		r = r.WithContext(context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, []byte(`{"enabled":true}`)))

		raw, err := rawBody(r)

		require.NoError(t, err)
		assert.JSONEq(t, `{"enabled":true}`, string(raw))
	})

	t.Run("unbuffered body is read from the request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(`{"enabled":false}`))

		raw, err := rawBody(r)

		require.NoError(t, err)
		assert.JSONEq(t, `{"enabled":false}`, string(raw))
	})
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("decodes the buffered body after the stream was consumed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/custom-services/x/enabled", http.NoBody)
		r = r.WithContext(context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, []byte(`{"enabled":true}`)))
		rec := httptest.NewRecorder()

		var dst publishRequest
		ok := decodeAndValidate(zap.NewNop(), rec, r, "req-1", "test", &dst)

		require.True(t, ok)
		require.NotNil(t, dst.Enabled)
		assert.True(t, *dst.Enabled)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/x", strings.NewReader(`{"enabled":`))
		rec := httptest.NewRecorder()

		var dst publishRequest
		ok := decodeAndValidate(zap.NewNop(), rec, r, "req-1", "test", &dst)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure is reported", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/x", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		var dst publishRequest
		ok := decodeAndValidate(zap.NewNop(), rec, r, "req-1", "test", &dst)

		assert.False(t, ok)
		assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	})
}
