package contracts

import (
	"context"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

type UploadUsecase interface {
	AuthorizeUpload(ctx context.Context, request *requests.AuthorizeUpload) (*responses.AuthorizeUpload, error)
}
