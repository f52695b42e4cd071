package middlewares

import (
	"context"
	"crypto/subtle"
	"lgu-portal-service/internal/app/services/shared/jwtmanager"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const ContextAPIKeyAuth constvars.ContextKey = "api_key_auth"

// APIKeyAuth marks requests carrying the superadmin key so the rate limiter
// can treat them separately. Requests without a key pass through.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)

		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !m.isSuperadminKey(apiKey) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), ContextAPIKeyAuth, true)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ADMIN_SUBJECT_KEY, constvars.AdminSubjectAPIKeySuperadmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin accepts the superadmin API key or a bearer token signed by
// the admin JWT manager.
func (m *Middlewares) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		if apiKey := r.Header.Get(constvars.HeaderAPIKey); apiKey != "" {
			if !m.isSuperadminKey(apiKey) {
				utils.LogSecurityEvent(m.Log, "admin_api_key_rejected", requestID, "medium",
					zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
				return
			}

			m.Log.Info("API Key authentication successful",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingMethodKey, r.Method),
			)
			ctx := context.WithValue(r.Context(), ContextAPIKeyAuth, true)
			ctx = context.WithValue(ctx, constvars.CONTEXT_ADMIN_SUBJECT_KEY, constvars.AdminSubjectAPIKeySuperadmin)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) || m.JWTManager == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		verified, err := m.JWTManager.VerifyToken(r.Context(), &jwtmanager.VerifyTokenInput{Token: strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix)})
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(err))
			return
		}
		if !verified.Valid {
			utils.LogSecurityEvent(m.Log, "admin_token_rejected", requestID, "medium",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_SUBJECT_KEY, verified.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) isSuperadminKey(apiKey string) bool {
	expected := m.InternalConfig.App.SuperadminAPIKey
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1
}
