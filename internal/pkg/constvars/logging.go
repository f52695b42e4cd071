package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingClientRequestIDKey = "client_request_id"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingErrorTypeKey  = "error_type"
	LoggingRouteKey      = "route"

	LoggingServiceIDKey         = "service_id"
	LoggingFieldIDKey           = "field_id"
	LoggingTransactionIDKey     = "transaction_id"
	LoggingTransactionStatusKey = "transaction_status"
	LoggingPaymentMethodKey     = "payment_method"
	LoggingTotalAmountMinorKey  = "total_amount_minor"
	LoggingInvoiceIDKey         = "invoice_id"
	LoggingGatewayStatusKey     = "gateway_status"
	LoggingObjectKey            = "object_key"
	LoggingContentTypeKey       = "content_type"
	LoggingByteSizeKey          = "byte_size"
	LoggingSourceKey            = "source"
	LoggingCountKey             = "count"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingQueueNameKey         = "queue_name"
	LoggingEventTypeKey         = "event_type"
)

const (
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingSubjectKey            = "subject"
	LoggingPageKey               = "page"
	LoggingPageSizeKey           = "page_size"
)
