package controllers

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type UploadController struct {
	Log           *zap.Logger
	UploadUsecase contracts.UploadUsecase
}

var (
	uploadControllerInstance *UploadController
	onceUploadController     sync.Once
)

func NewUploadController(logger *zap.Logger, uploadUsecase contracts.UploadUsecase) *UploadController {
	onceUploadController.Do(func() {
		uploadControllerInstance = &UploadController{
			Log:           logger,
			UploadUsecase: uploadUsecase,
		}
	})
	return uploadControllerInstance
}

func (ctrl *UploadController) AuthorizeUpload(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDOrFail(ctrl.Log, w, r, "UploadController.AuthorizeUpload")
	if !ok {
		return
	}
	ctrl.Log.Info("UploadController.AuthorizeUpload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.AuthorizeUpload)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, "UploadController.AuthorizeUpload", request) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultHandlerTimeout)
	defer cancel()

	result, err := ctrl.UploadUsecase.AuthorizeUpload(ctx, request)
	if err != nil {
		ctrl.Log.Error("UploadController.AuthorizeUpload error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UploadController.AuthorizeUpload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, result.Key),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AuthorizeUploadSuccessMessage, result)
}
