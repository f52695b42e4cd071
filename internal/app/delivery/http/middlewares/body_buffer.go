package middlewares

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
)

const defaultBodyLimitInMegabyte = 1

// BodyBuffer reads the request body up to the configured limit, stores the
// raw bytes in the context and replaces the body so handlers can decode it.
func (m *Middlewares) BodyBuffer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := m.bodyLimit()
		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRequestBodyTooLarge(err, limit))
				return
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrReadBody(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, bodyBytes)
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) bodyLimit() int64 {
	megabytes := m.InternalConfig.App.RequestBodyLimitInMegabyte
	if megabytes <= 0 {
		megabytes = defaultBodyLimitInMegabyte
	}
	return int64(megabytes) << 20
}
