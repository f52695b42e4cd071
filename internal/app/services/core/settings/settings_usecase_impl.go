package settings

import (
	"context"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type settingsUsecase struct {
	SettingsRepository contracts.SettingsRepository
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	settingsUsecaseInstance contracts.SettingsUsecase
	onceSettingsUsecase     sync.Once
)

func NewSettingsUsecase(
	settingsRepository contracts.SettingsRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SettingsUsecase {
	onceSettingsUsecase.Do(func() {
		settingsUsecaseInstance = newSettingsUsecase(settingsRepository, redisRepository, internalConfig, logger)
	})
	return settingsUsecaseInstance
}

func newSettingsUsecase(
	settingsRepository contracts.SettingsRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *settingsUsecase {
	return &settingsUsecase{
		SettingsRepository: settingsRepository,
		RedisRepository:    redisRepository,
		InternalConfig:     internalConfig,
		Log:                logger,
	}
}

// GetPublicSettings serves the fee schedule from cache and falls back to
// the database. Cache failures are logged and never fail the request.
func (uc *settingsUsecase) GetPublicSettings(ctx context.Context) (*responses.PublicSettings, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("settingsUsecase.GetPublicSettings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyPublicSettings)
	if err != nil {
		uc.Log.Warn("settingsUsecase.GetPublicSettings error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if cached != "" {
		publicSettings := new(responses.PublicSettings)
		if err := json.Unmarshal([]byte(cached), publicSettings); err == nil {
			uc.Log.Info("settingsUsecase.GetPublicSettings served from cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return publicSettings, nil
		}
		uc.Log.Warn("settingsUsecase.GetPublicSettings ignoring malformed cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
	}

	settings, err := uc.SettingsRepository.FindGlobal(ctx)
	if err != nil {
		uc.Log.Error("settingsUsecase.GetPublicSettings error fetching settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if settings == nil {
		settings = &models.Settings{}
	}

	publicSettings := toPublicSettings(settings)
	if err := uc.RedisRepository.Set(ctx, constvars.RedisKeyPublicSettings, publicSettings, uc.cacheTTL()); err != nil {
		uc.Log.Warn("settingsUsecase.GetPublicSettings error writing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("settingsUsecase.GetPublicSettings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return publicSettings, nil
}

func (uc *settingsUsecase) UpdateSettings(ctx context.Context, request *requests.UpdateSettings) (*responses.PublicSettings, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("settingsUsecase.UpdateSettings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	settings, err := uc.SettingsRepository.FindGlobal(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &models.Settings{}
		settings.SetCreatedAtUpdatedAt()
	} else {
		settings.SetUpdatedAt()
	}
	settings.ConvenienceFee = models.ConvenienceFeeSettings{
		Card:           toModelFeeParams(request.ConvenienceFee.Card),
		DigitalWallets: toModelFeeParams(request.ConvenienceFee.DigitalWallets),
		DOB:            toModelFeeParams(request.ConvenienceFee.DOB),
		QRPH:           toModelFeeParams(request.ConvenienceFee.QRPH),
	}

	if err := uc.SettingsRepository.UpsertGlobal(ctx, settings); err != nil {
		uc.Log.Error("settingsUsecase.UpdateSettings error saving settings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyPublicSettings); err != nil {
		uc.Log.Warn("settingsUsecase.UpdateSettings error invalidating cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "convenience_fee_updated", requestID)
	return toPublicSettings(settings), nil
}

func (uc *settingsUsecase) cacheTTL() time.Duration {
	ttl := time.Duration(uc.InternalConfig.Settings.CacheTTLInSeconds) * time.Second
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}

func toModelFeeParams(params *requests.FeeParams) *models.FeeParams {
	if params == nil {
		return nil
	}
	return &models.FeeParams{Percent: params.Percent, Fixed: params.Fixed, Min: params.Min}
}

func toResponseFeeParams(params *models.FeeParams) *responses.FeeParams {
	if params == nil {
		return nil
	}
	return &responses.FeeParams{Percent: params.Percent, Fixed: params.Fixed, Min: params.Min}
}

func toPublicSettings(settings *models.Settings) *responses.PublicSettings {
	return &responses.PublicSettings{
		ConvenienceFee: responses.ConvenienceFeeSettings{
			Card:           toResponseFeeParams(settings.ConvenienceFee.Card),
			DigitalWallets: toResponseFeeParams(settings.ConvenienceFee.DigitalWallets),
			DOB:            toResponseFeeParams(settings.ConvenienceFee.DOB),
			QRPH:           toResponseFeeParams(settings.ConvenienceFee.QRPH),
		},
	}
}
