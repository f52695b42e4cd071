package constvars

const (
	ResponseUnknown = "unknown"

	GetServiceConfigSuccessMessage       = "service configuration fetched successfully"
	GetFormConfigSuccessMessage          = "form configuration fetched successfully"
	GetPublicSettingsSuccessMessage      = "settings fetched successfully"
	UpdateSettingsSuccessMessage         = "settings updated successfully"
	CreateCustomServiceSuccessMessage    = "custom service created successfully"
	UpdateCustomServiceSuccessMessage    = "custom service updated successfully"
	DeleteCustomServiceSuccessMessage    = "custom service deleted successfully"
	ListCustomServicesSuccessMessage     = "custom services fetched successfully"
	UpsertFormConfigSuccessMessage       = "form configuration saved successfully"
	AuthorizeUploadSuccessMessage        = "upload authorized successfully"
	InitiatePaymentSuccessMessage        = "payment initiated successfully"
	CancelPaymentSuccessMessage          = "payment cancelled successfully"
	GetTransactionSuccessMessage         = "transaction fetched successfully"
	ListTransactionsSuccessMessage       = "transactions fetched successfully"
	PaymentCallbackSuccessfullyProcessed = "payment callback processed successfully"
)
