package config

type DriverConfig struct {
	MongoDB  MongoDB  `mapstructure:"mongodb"`
	Redis    Redis    `mapstructure:"redis"`
	Logger   Logger   `mapstructure:"logger"`
	RabbitMQ RabbitMQ `mapstructure:"rabbitmq"`
	Minio    Minio    `mapstructure:"minio"`
}

type MongoDB struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db_name"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

type Logger struct {
	Level               string `mapstructure:"level"`
	OutputFileName      string `mapstructure:"output_file_name"`
	OutputErrorFileName string `mapstructure:"output_error_file_name"`
}

type RabbitMQ struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Minio struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

type InternalConfig struct {
	App            App               `mapstructure:"app"`
	JWT            AppJWT            `mapstructure:"jwt"`
	Minio          AppMinio          `mapstructure:"minio"`
	RabbitMQ       AppRabbitMQ       `mapstructure:"rabbitmq"`
	Uploads        AppUploads        `mapstructure:"uploads"`
	Settings       AppSettings       `mapstructure:"settings"`
	PaymentGateway AppPaymentGateway `mapstructure:"payment_gateway"`
	Workers        AppWorkers        `mapstructure:"workers"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	BaseUrl                    string `mapstructure:"base_url"`
	Timezone                   string `mapstructure:"timezone"`
	FrontendDomain             string `mapstructure:"frontend_domain"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	SuperadminAPIKey           string `mapstructure:"superadmin_api_key"`
	SuperadminAPIKeyRateLimit  int    `mapstructure:"superadmin_api_key_rate_limit"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppMinio struct {
	BucketName                     string `mapstructure:"bucket_name"`
	PreSignedUploadExpiryInMinutes int    `mapstructure:"pre_signed_upload_expiry_in_minutes"`
}

type AppRabbitMQ struct {
	TransactionEventsQueue string `mapstructure:"transaction_events_queue"`
}

type AppUploads struct {
	MaxUploadSizeInMB   int64    `mapstructure:"max_upload_size_in_mb"`
	AllowedContentTypes []string `mapstructure:"allowed_content_types"`
}

type AppSettings struct {
	CacheTTLInSeconds int `mapstructure:"cache_ttl_in_seconds"`
}

type AppPaymentGateway struct {
	BaseUrl                     string   `mapstructure:"base_url"`
	ApiKey                      string   `mapstructure:"api_key"`
	CallbackToken               string   `mapstructure:"callback_token"`
	RequestTimeoutInSeconds     int      `mapstructure:"request_timeout_in_seconds"`
	RequestsPerSecond           float64  `mapstructure:"requests_per_second"`
	PaymentExpiredTimeInMinutes int      `mapstructure:"payment_expired_time_in_minutes"`
	EnabledPaymentMethods       []string `mapstructure:"enabled_payment_methods"`
}

type AppWorkers struct {
	ExpiryCronSpec         string `mapstructure:"expiry_cron_spec"`
	ExpiryBatchSize        int    `mapstructure:"expiry_batch_size"`
	LeaderLockTTLInSeconds int    `mapstructure:"leader_lock_ttl_in_seconds"`
}
