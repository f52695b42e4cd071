package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
	CONTEXT_ADMIN_SUBJECT_KEY        ContextKey = "admin_subject"
)

const (
	REQUEST_ID_PREFIX = "LGU_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)

const (
	MongoCollectionCustomServices = "custom_services"
	MongoCollectionFormConfigs    = "form_configs"
	MongoCollectionSettings       = "settings"
	MongoCollectionTransactions   = "transactions"

	MongoGlobalSettingsID = "global"
)

const (
	RedisKeyPublicSettings       = "settings:public"
	RedisKeyTransactionLockFmt   = "lock:transaction:%s"
	RedisKeyExpiryWorkerLeader   = "worker:payment-expiry:leader"
	AdminTokenIssuer             = "lgu-portal-service"
	AdminSubjectAPIKeySuperadmin = "api-key-superadmin"
)
