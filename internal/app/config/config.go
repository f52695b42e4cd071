package config

import (
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "lgu_portal"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Manila"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
			SuperadminAPIKey:           utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
			SuperadminAPIKeyRateLimit:  utils.GetEnvInt("APP_SUPERADMIN_API_KEY_RATE_LIMIT", 120),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", ""),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 8),
		},
		Minio: AppMinio{
			BucketName:                     utils.GetEnvString("APP_MINIO_BUCKET_NAME", "lgu-portal-uploads"),
			PreSignedUploadExpiryInMinutes: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_UPLOAD_EXPIRY_IN_MINUTES", 10),
		},
		RabbitMQ: AppRabbitMQ{
			TransactionEventsQueue: utils.GetEnvString("APP_RABBITMQ_TRANSACTION_EVENTS_QUEUE", constvars.QueueTransactionEvents),
		},
		Uploads: AppUploads{
			MaxUploadSizeInMB:   utils.GetEnvInt64("APP_UPLOAD_MAX_SIZE_IN_MB", 10),
			AllowedContentTypes: splitCSV(utils.GetEnvString("APP_UPLOAD_ALLOWED_CONTENT_TYPES", "application/pdf,image/jpeg,image/png,image/webp")),
		},
		Settings: AppSettings{
			CacheTTLInSeconds: utils.GetEnvInt("APP_SETTINGS_CACHE_TTL_IN_SECONDS", 60),
		},
		PaymentGateway: AppPaymentGateway{
			BaseUrl:                     utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://api.xendit.co"),
			ApiKey:                      utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			CallbackToken:               utils.GetEnvString("PAYMENT_GATEWAY_CALLBACK_TOKEN", ""),
			RequestTimeoutInSeconds:     utils.GetEnvInt("PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RequestsPerSecond:           utils.GetEnvFloat("PAYMENT_GATEWAY_REQUESTS_PER_SECOND", 5),
			PaymentExpiredTimeInMinutes: utils.GetEnvInt("APP_PAYMENT_EXPIRED_TIME_IN_MINUTES", 60),
			EnabledPaymentMethods:       splitCSV(utils.GetEnvString("PAYMENT_GATEWAY_ENABLED_PAYMENT_METHODS", "")),
		},
		Workers: AppWorkers{
			ExpiryCronSpec:         utils.GetEnvString("APP_EXPIRY_WORKER_CRON_SPEC", "@every 5m"),
			ExpiryBatchSize:        utils.GetEnvInt("APP_EXPIRY_WORKER_BATCH_SIZE", 100),
			LeaderLockTTLInSeconds: utils.GetEnvInt("APP_EXPIRY_WORKER_LEADER_LOCK_TTL_IN_SECONDS", 240),
		},
	}
}

func splitCSV(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
