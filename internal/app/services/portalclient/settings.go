package portalclient

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// GetPublicSettings reads the convenience fee schedule. Methods missing from
// the response are left nil.
func (c *Client) GetPublicSettings(ctx context.Context) (*models.ConvenienceFeeSettings, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("Client.GetPublicSettings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resp, err := c.request(ctx).Get(publicSettingsPath)
	if err := checkResponse(resp, err, targetOf(http.MethodGet, publicSettingsPath)); err != nil {
		c.Log.Error("Client.GetPublicSettings error fetching settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("settings response is not valid json")
	}

	convenienceFee := gjson.GetBytes(body, "data.convenienceFee")
	settings := &models.ConvenienceFeeSettings{
		Card:           feeParams(convenienceFee.Get("card")),
		DigitalWallets: feeParams(convenienceFee.Get("digitalWallets")),
		DOB:            feeParams(convenienceFee.Get("dob")),
		QRPH:           feeParams(convenienceFee.Get("qrph")),
	}

	c.Log.Info("Client.GetPublicSettings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return settings, nil
}

func feeParams(value gjson.Result) *models.FeeParams {
	if !value.IsObject() {
		return nil
	}
	return &models.FeeParams{
		Percent: value.Get("percent").Float(),
		Fixed:   value.Get("fixed").Float(),
		Min:     value.Get("min").Float(),
	}
}
