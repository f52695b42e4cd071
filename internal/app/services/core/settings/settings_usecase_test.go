package settings

import (
	"context"
	"errors"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) FindGlobal(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).(*models.Settings)
	return settings, args.Error(1)
}

func (m *mockSettingsRepository) UpsertGlobal(ctx context.Context, settings *models.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func newTestUsecase() (*settingsUsecase, *mockSettingsRepository, *mockRedisRepository) {
	repo := new(mockSettingsRepository)
	cache := new(mockRedisRepository)
	cfg := &config.InternalConfig{Settings: config.AppSettings{CacheTTLInSeconds: 30}}
	return newSettingsUsecase(repo, cache, cfg, zap.NewNop()), repo, cache
}

func TestSettingsUsecase_GetPublicSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()
		cache.On("Get", ctx, constvars.RedisKeyPublicSettings).
			Return(`{"convenienceFee":{"card":{"percent":2.5,"fixed":10,"min":5}}}`, nil)

		settings, err := uc.GetPublicSettings(ctx)

		require.NoError(t, err)
		assert.Equal(t, &responses.FeeParams{Percent: 2.5, Fixed: 10, Min: 5}, settings.ConvenienceFee.Card)
		repo.AssertNotCalled(t, "FindGlobal", mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()
		cache.On("Get", ctx, constvars.RedisKeyPublicSettings).Return("", nil)
		repo.On("FindGlobal", ctx).Return(&models.Settings{
			ConvenienceFee: models.ConvenienceFeeSettings{QRPH: &models.FeeParams{Fixed: 5}},
		}, nil)
		cache.On("Set", ctx, constvars.RedisKeyPublicSettings, mock.Anything, 30*time.Second).Return(nil)

		settings, err := uc.GetPublicSettings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5.0, settings.ConvenienceFee.QRPH.Fixed)
		assert.Nil(t, settings.ConvenienceFee.Card)
		cache.AssertExpectations(t)
	})

	t.Run("redis outage falls back to the database", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()
		cache.On("Get", ctx, constvars.RedisKeyPublicSettings).Return("", errors.New("connection refused"))
		cache.On("Set", ctx, constvars.RedisKeyPublicSettings, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
		repo.On("FindGlobal", ctx).Return(nil, nil)

		settings, err := uc.GetPublicSettings(ctx)

		require.NoError(t, err)
		assert.Nil(t, settings.ConvenienceFee.Card)
	})

	t.Run("database failure is returned", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()
		cache.On("Get", ctx, constvars.RedisKeyPublicSettings).Return("", nil)
		repo.On("FindGlobal", ctx).Return(nil, errors.New("mongo down"))

		_, err := uc.GetPublicSettings(ctx)

		assert.Error(t, err)
	})
}

func TestSettingsUsecase_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	uc, repo, cache := newTestUsecase()
	repo.On("FindGlobal", ctx).Return(nil, nil)
	repo.On("UpsertGlobal", ctx, mock.MatchedBy(func(settings *models.Settings) bool {
		return settings.ConvenienceFee.Card != nil && settings.ConvenienceFee.Card.Percent == 2.5 && settings.ConvenienceFee.DOB == nil
	})).Return(nil)
	cache.On("Delete", ctx, constvars.RedisKeyPublicSettings).Return(nil)

	updated, err := uc.UpdateSettings(ctx, &requests.UpdateSettings{
		ConvenienceFee: requests.ConvenienceFeeSettings{Card: &requests.FeeParams{Percent: 2.5, Fixed: 10, Min: 5}},
	})

	require.NoError(t, err)
	assert.Equal(t, 10.0, updated.ConvenienceFee.Card.Fixed)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
