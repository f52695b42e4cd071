package portalclient

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/utils"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Upload stores file for field and returns its object key. The object is
// written straight to storage through a presigned URL.
func (c *Client) Upload(ctx context.Context, field models.FormField, file models.LocalFile, serviceID string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	contentType := detectContentType(file)
	c.Log.Info("Client.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFieldIDKey, field.ID),
		zap.String(constvars.LoggingContentTypeKey, contentType),
		zap.Int64(constvars.LoggingByteSizeKey, file.Size()),
	)

	if file.Size() == 0 {
		return "", fmt.Errorf("file %q is empty", file.Name)
	}

	result := new(envelope[responses.AuthorizeUpload])
	resp, err := c.request(ctx).
		SetBody(&requests.AuthorizeUpload{
			ContentType: contentType,
			MaxBytes:    file.Size(),
			KeyPrefix:   utils.GenerateUploadKeyPrefix(serviceID, field.ID),
			FileName:    file.Name,
		}).
		SetResult(result).
		Post(authorizeUploadPath)
	if err := checkResponse(resp, err, targetOf(http.MethodPost, authorizeUploadPath)); err != nil {
		c.Log.Error("Client.Upload error authorizing upload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	authorization := result.Data
	if authorization.Key == "" || authorization.UploadURL == "" {
		return "", fmt.Errorf("upload authorization for %s is incomplete", field.ID)
	}

	putResp, err := c.storage.R().
		SetContext(ctx).
		SetHeader(constvars.HeaderContentType, contentType).
		SetBody(file.Content).
		Put(authorization.UploadURL)
	if err := checkResponse(putResp, err, targetOf(http.MethodPut, "presigned upload url")); err != nil {
		c.Log.Error("Client.Upload error writing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, authorization.Key),
			zap.Error(err),
		)
		return "", err
	}

	c.Log.Info("Client.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, authorization.Key),
	)
	return authorization.Key, nil
}

// detectContentType prefers the declared type and falls back to sniffing
// the content. Parameters such as charset are dropped.
func detectContentType(file models.LocalFile) string {
	contentType := file.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(file.Content).String()
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return constvars.MIMEOctetStream
}
