package constvars

const (
	URLParamServiceID     = "service_id"
	URLParamTransactionID = "transaction_id"
)

const (
	URLQueryParamPage      = "page"
	URLQueryParamPageSize  = "page_size"
	URLQueryParamStatus    = "status"
	URLQueryParamServiceID = "service_id"
)

// Stepper location parameters carried in the portal page URL.
const (
	StepperQueryStep          = "step"
	StepperQueryReset         = "reset"
	StepperQueryTransactionID = "transactionId"
	StepperQueryCancel        = "cancel"
	StepperQuerySuccess       = "success"
)
