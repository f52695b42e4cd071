package controllers

import (
	"context"
	"errors"
	"io"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultHandlerTimeout = 30 * time.Second

// requestIDOrFail returns the request id set by the request id middleware
// and writes an error response when it is missing.
func requestIDOrFail(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string) (string, bool) {
	requestID := utils.GetRequestID(r.Context())
	if requestID == "" {
		log.Error(caller+" requestID not found in context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

// rawBody returns the body buffered by the body buffer middleware, reading
// the request directly only when the middleware did not run.
func rawBody(r *http.Request) ([]byte, error) {
	if raw, ok := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte); ok {
		return raw, nil
	}
	return io.ReadAll(r.Body)
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. It writes the error response itself.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, requestID, caller string, dst interface{}) bool {
	raw, err := rawBody(r)
	if err != nil {
		utils.BuildErrorResponse(log, w, exceptions.ErrReadBody(err))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Error(caller+" error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingByteSizeKey, len(raw)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	if err := utils.ValidateStruct(dst); err != nil {
		log.Error(caller+" validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
