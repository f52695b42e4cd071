package middlewares

import (
	"bytes"
	"io"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	m := NewMiddlewares(zap.NewNop(), &config.InternalConfig{}, nil)
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("client request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id-1", seen)
		assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("request id is generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestLogging(t *testing.T) {
	newRouter := func() (*chi.Mux, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)
		m := NewMiddlewares(logger, &config.InternalConfig{}, nil)

		router := chi.NewRouter()
		router.Use(m.RequestIDMiddleware)
		router.Use(m.Logging(logger))
		router.Route("/api/v1", func(r chi.Router) {
			r.Get("/public/services/{service_id}", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true}`))
			})
			r.Get("/payments/{transaction_id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})
		})
		return router, logs
	}

	t.Run("service id from the matched route", func(t *testing.T) {
		router, logs := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/public/services/business-permits", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-2")

		router.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.FilterMessage("Portal request completed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "business-permits", fields[constvars.LoggingServiceIDKey])
		assert.Equal(t, "/api/v1/public/services/{service_id}", fields[constvars.LoggingRouteKey])
		assert.Equal(t, "client-id-2", fields[constvars.LoggingRequestIDKey])
		assert.Equal(t, true, fields[constvars.LoggingClientRequestIDKey])
		assert.Equal(t, int64(len(`{"success":true}`)), fields[constvars.LoggingByteSizeKey])
		_, hasTransaction := fields[constvars.LoggingTransactionIDKey]
		assert.False(t, hasTransaction)
	})

	t.Run("client errors carry the transaction id at warn level", func(t *testing.T) {
		router, logs := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/3f1f5c1e-8f0e-4a55-9d0b-6a8f4f3b2c11", nil)

		router.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.FilterMessage("Portal request rejected").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "3f1f5c1e-8f0e-4a55-9d0b-6a8f4f3b2c11", fields[constvars.LoggingTransactionIDKey])
		assert.Equal(t, int64(http.StatusNotFound), fields[constvars.LoggingStatusCodeKey])
		assert.Equal(t, false, fields[constvars.LoggingClientRequestIDKey])
	})
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	m := NewMiddlewares(zap.NewNop(), &config.InternalConfig{}, nil)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestBodyBuffer(t *testing.T) {
	m := NewMiddlewares(zap.NewNop(), &config.InternalConfig{App: config.App{RequestBodyLimitInMegabyte: 1}}, nil)
	handler := m.BodyBuffer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, raw, body)
		w.Write(body)
	}))

	t.Run("body is readable twice", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))

		assert.Equal(t, `{"a":1}`, rr.Body.String())
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 2<<20))))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(zap.NewNop(), 2, time.Hour, time.Minute)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/callback", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/callback", nil)
	other.RemoteAddr = "198.51.100.1:4000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(zap.NewNop(), 2, time.Second, 10*time.Second)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.allow("203.0.113.7"))
	assert.True(t, limiter.allow("203.0.113.8"))

	clock = clock.Add(5 * time.Second)
	assert.True(t, limiter.allow("198.51.100.1"))
	assert.Equal(t, 3, limiter.size())

	clock = clock.Add(5 * time.Second)
	assert.True(t, limiter.allow("198.51.100.1"))
	assert.Equal(t, 1, limiter.size())

	assert.True(t, limiter.allow("203.0.113.7"))
	assert.Equal(t, 2, limiter.size())
}

func TestRateLimiter_KeepsBlockedClients(t *testing.T) {
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(zap.NewNop(), 1, time.Second, time.Minute)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.allow("203.0.113.7"))
	assert.False(t, limiter.allow("203.0.113.7"))

	clock = clock.Add(30 * time.Second)
	assert.False(t, limiter.allow("203.0.113.7"))

	clock = clock.Add(31 * time.Second)
	assert.True(t, limiter.allow("198.51.100.1"))
	assert.Equal(t, 2, limiter.size())

	clock = clock.Add(90 * time.Second)
	assert.True(t, limiter.allow("203.0.113.7"))
}
