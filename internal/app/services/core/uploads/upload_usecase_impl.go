package uploads

import (
	"context"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"mime"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const bytesPerMegabyte = 1024 * 1024

type uploadUsecase struct {
	Storage        contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	now            func() time.Time
}

var (
	uploadUsecaseInstance contracts.UploadUsecase
	onceUploadUsecase     sync.Once
)

func NewUploadUsecase(storage contracts.Storage, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.UploadUsecase {
	onceUploadUsecase.Do(func() {
		uploadUsecaseInstance = newUploadUsecase(storage, internalConfig, logger)
	})
	return uploadUsecaseInstance
}

func newUploadUsecase(storage contracts.Storage, internalConfig *config.InternalConfig, logger *zap.Logger) *uploadUsecase {
	return &uploadUsecase{
		Storage:        storage,
		InternalConfig: internalConfig,
		Log:            logger,
		now:            time.Now,
	}
}

// AuthorizeUpload checks the declared file against the upload policy and
// returns a presigned PUT URL for a freshly generated object key.
func (uc *uploadUsecase) AuthorizeUpload(ctx context.Context, request *requests.AuthorizeUpload) (*responses.AuthorizeUpload, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("uploadUsecase.AuthorizeUpload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingContentTypeKey, request.ContentType),
		zap.Int64(constvars.LoggingByteSizeKey, request.MaxBytes),
	)

	contentType, ok := uc.allowedContentType(request.ContentType)
	if !ok {
		utils.LogSecurityEvent(uc.Log, "upload_content_type_rejected", requestID, "low",
			zap.String(constvars.LoggingContentTypeKey, request.ContentType),
		)
		return nil, exceptions.ErrUnsupportedContentType(request.ContentType)
	}

	limit := uc.InternalConfig.Uploads.MaxUploadSizeInMB * bytesPerMegabyte
	if request.MaxBytes > limit {
		return nil, exceptions.ErrUploadTooLarge(request.MaxBytes, limit)
	}

	key := utils.GenerateObjectKey(request.KeyPrefix, extensionFor(contentType, request.FileName))
	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUploadExpiryInMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	uploadURL, err := uc.Storage.PresignedPutURL(ctx, uc.InternalConfig.Minio.BucketName, key, expiry)
	if err != nil {
		uc.Log.Error("uploadUsecase.AuthorizeUpload error presigning upload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("uploadUsecase.AuthorizeUpload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, key),
	)
	return &responses.AuthorizeUpload{
		Key:       key,
		UploadURL: uploadURL,
		ExpiresAt: uc.now().Add(expiry).UTC(),
	}, nil
}

func (uc *uploadUsecase) allowedContentType(declared string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return "", false
	}
	for _, allowed := range uc.InternalConfig.Uploads.AllowedContentTypes {
		if strings.EqualFold(strings.TrimSpace(allowed), mediaType) {
			return mediaType, true
		}
	}
	return "", false
}

// extensionFor prefers the canonical extension of the content type and
// falls back to the original file name.
func extensionFor(contentType, fileName string) string {
	if known := mimetype.Lookup(contentType); known != nil && known.Extension() != "" {
		return known.Extension()
	}
	return path.Ext(fileName)
}
