package utils

import (
	"path"
	"strings"

	"lgu-portal-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateObjectKey builds "<prefix>/<uuid><ext>" where ext is taken from
// the original file name when present.
func GenerateObjectKey(keyPrefix, extension string) string {
	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return path.Join(strings.TrimSuffix(keyPrefix, "/"), uuid.NewString()+extension)
}

func GenerateUploadKeyPrefix(serviceID, fieldID string) string {
	return path.Join("services", serviceID, fieldID)
}
