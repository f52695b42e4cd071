package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email",
	"min":            "must be at least %s",
	"max":            "must be at most %s",
	"len":            "must be %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"url":            "must be a valid URL",
	"uuid":           "must be a valid UUID",
	"dive":           "is invalid",
	"unique":         "must not contain duplicates",
	"service_id":     "must be a lowercase kebab-case identifier",
	"field_id":       "must start with a letter and contain only letters, digits, '_' or '-'",
	"field_type":     "is not a supported form field type",
	"payment_method": "must be one of [card, digital-wallets, dob, qrph]",
	"breakdown_code": "must be one of [base, tax, convenience_fee, processing_fee, discount, other]",
	"key_prefix":     "must look like services/<service-id>/<field-id>",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRequestBodyTooLarge           = "the request body is too large"
	ErrClientServiceNotFound               = "the requested service could not be found"
	ErrClientTransactionNotFound           = "the requested transaction could not be found"
	ErrClientBreakdownMismatch             = "the payment total does not match its breakdown"
	ErrClientInvalidTotalAmount            = "the payment total must be greater than zero"
	ErrClientPriceMismatch                 = "the payment amount does not match the current price of this service"
	ErrClientUnsupportedContentType        = "this file type is not accepted"
	ErrClientUploadTooLarge                = "the file exceeds the maximum allowed size"
	ErrClientPaymentGatewayUnavailable     = "we could not reach the payment provider, please try again"
	ErrClientTransactionBusy               = "the transaction is being updated, please try again"
	ErrClientInvalidCallbackToken          = "invalid callback token"
	ErrClientCustomServiceAlreadyExists    = "a custom service with this id already exists"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevReadBody                   = "failed to read request body"
	ErrDevTooManyRequests            = "rate limit exceeded for %s"
	ErrDevRequestBodyTooLarge        = "request body exceeds %d bytes"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevUnexpectedStatusCode       = "unexpected status code %d from %s"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevInvalidAPIKey             = "invalid API key"

	// Domain messages
	ErrDevServiceNotFound            = "service %s not found"
	ErrDevTransactionNotFound        = "transaction %s not found"
	ErrDevBreakdownMismatch          = "breakdown sum %d does not equal total %d"
	ErrDevInvalidTotalAmount         = "total amount %d is not positive"
	ErrDevBreakdownOverflow          = "breakdown sum does not fit in minor units"
	ErrDevPriceMismatch              = "breakdown item %s is %d, expected %d"
	ErrDevUnsupportedContentType     = "content type %s is not in the allow list"
	ErrDevUploadTooLarge             = "declared size %d exceeds limit %d"
	ErrDevTransactionLockNotAcquired = "transaction lock %s is held by another request"
	ErrDevInvalidCallbackToken       = "callback token mismatch"
	ErrDevCustomServiceAlreadyExists = "custom service %s already exists"
	ErrDevInvalidFormFields          = "invalid form fields: %s"

	// Database messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCountDocuments   = "failed to count documents"

	// Redis messages
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// Storage messages
	ErrDevMinioPresignObject = "failed to presign upload for bucket %s"

	// Messaging messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	// Payment gateway messages
	ErrDevPaymentGatewayCreateInvoice = "payment gateway failed to create invoice"
	ErrDevPaymentGatewayExpireInvoice = "payment gateway failed to expire invoice"
)
