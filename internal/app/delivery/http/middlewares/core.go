package middlewares

import (
	"context"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Logging writes one access log line per request. Service and transaction
// ids are taken from the matched route, so they are only known once the
// router has run.
func (m *Middlewares) Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := utils.GetRequestID(r.Context())
			isClientRequestID, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Bool(constvars.LoggingClientRequestIDKey, isClientRequestID),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Int(constvars.LoggingStatusCodeKey, rec.statusCode),
				zap.Int(constvars.LoggingByteSizeKey, rec.bytes),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			}
			fields = append(fields, routeFields(r)...)

			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				logger.Error("Portal request failed", fields...)
			case rec.statusCode >= http.StatusBadRequest:
				logger.Warn("Portal request rejected", fields...)
			default:
				logger.Info("Portal request completed", fields...)
			}
		})
	}
}

func routeFields(r *http.Request) []zap.Field {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	var fields []zap.Field
	if pattern := rctx.RoutePattern(); pattern != "" {
		fields = append(fields, zap.String(constvars.LoggingRouteKey, pattern))
	}
	if serviceID := rctx.URLParam(constvars.URLParamServiceID); serviceID != "" {
		fields = append(fields, zap.String(constvars.LoggingServiceIDKey, serviceID))
	}
	if transactionID := rctx.URLParam(constvars.URLParamTransactionID); transactionID != "" {
		fields = append(fields, zap.String(constvars.LoggingTransactionIDKey, transactionID))
	}
	return fields
}

func (m *Middlewares) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		isClientRequestID := true

		if requestID == "" {
			requestID = utils.GenerateRequestID()
			isClientRequestID = false
		}

		ctx := utils.WithRequestID(r.Context(), requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, isClientRequestID)

		w.Header().Set(constvars.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
