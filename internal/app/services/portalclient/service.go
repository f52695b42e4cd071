package portalclient

import (
	"context"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// GetPublicService fetches an enabled custom service. Disabled and unknown
// services both come back as (nil, nil).
func (c *Client) GetPublicService(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	return c.getServiceConfig(ctx, "Client.GetPublicService", publicServicePath, serviceID)
}

// GetFormConfig fetches the general form configuration of serviceID.
func (c *Client) GetFormConfig(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	return c.getServiceConfig(ctx, "Client.GetFormConfig", formConfigPath, serviceID)
}

func (c *Client) getServiceConfig(ctx context.Context, caller, path, serviceID string) (*models.ServiceConfig, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info(caller+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	result := new(envelope[*models.ServiceConfig])
	resp, err := c.request(ctx).
		SetPathParam("serviceId", serviceID).
		SetResult(result).
		Get(path)
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		c.Log.Info(caller+" service not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
		)
		return nil, nil
	}
	if err := checkResponse(resp, err, targetOf(http.MethodGet, path)); err != nil {
		c.Log.Error(caller+" error fetching service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info(caller+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	return result.Data, nil
}
