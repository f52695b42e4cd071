package constvars

const (
	PaymentMethodCard           = "card"
	PaymentMethodDigitalWallets = "digital-wallets"
	PaymentMethodDOB            = "dob"
	PaymentMethodQRPH           = "qrph"
)

const (
	PaymentCurrencyPHP = "PHP"
)

// Invoice statuses reported by the payment gateway.
const (
	GatewayInvoiceStatusPending = "PENDING"
	GatewayInvoiceStatusPaid    = "PAID"
	GatewayInvoiceStatusSettled = "SETTLED"
	GatewayInvoiceStatusExpired = "EXPIRED"
	GatewayInvoiceStatusFailed  = "FAILED"
)

const (
	QueueTransactionEvents = "transaction_events"

	EventTransactionCreated   = "transaction.created"
	EventTransactionPaid      = "transaction.paid"
	EventTransactionCancelled = "transaction.cancelled"
	EventTransactionFailed    = "transaction.failed"
	EventTransactionExpired   = "transaction.expired"
)
