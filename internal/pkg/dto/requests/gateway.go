package requests

// GatewayInvoiceStatus is the invoice status reported by the payment gateway.
type GatewayInvoiceStatus string

const (
	GatewayInvoiceStatusPending GatewayInvoiceStatus = "PENDING"
	GatewayInvoiceStatusPaid    GatewayInvoiceStatus = "PAID"
	GatewayInvoiceStatusSettled GatewayInvoiceStatus = "SETTLED"
	GatewayInvoiceStatusExpired GatewayInvoiceStatus = "EXPIRED"
	GatewayInvoiceStatusFailed  GatewayInvoiceStatus = "FAILED"
)

type GatewayCallbackHeader struct {
	CallbackToken string
	WebhookID     string
}

// GatewayCallbackBody is the invoice webhook body. ExternalID carries our
// transaction id.
type GatewayCallbackBody struct {
	ID            string               `json:"id" validate:"required"`
	ExternalID    string               `json:"external_id" validate:"required"`
	Status        GatewayInvoiceStatus `json:"status" validate:"required,oneof=PENDING PAID SETTLED EXPIRED FAILED"`
	Amount        *float64             `json:"amount,omitempty"`
	PaidAmount    *float64             `json:"paid_amount,omitempty"`
	PaymentMethod *string              `json:"payment_method,omitempty"`
	Currency      *string              `json:"currency,omitempty"`
	PaidAt        *string              `json:"paid_at,omitempty"`
}

// GatewayCreateInvoice is sent to the gateway's invoice endpoint.
type GatewayCreateInvoice struct {
	ExternalID         string               `json:"external_id"`
	Amount             float64              `json:"amount"`
	Currency           string               `json:"currency"`
	Description        string               `json:"description"`
	InvoiceDuration    int                  `json:"invoice_duration"`
	SuccessRedirectURL string               `json:"success_redirect_url"`
	FailureRedirectURL string               `json:"failure_redirect_url"`
	PaymentMethods     []string             `json:"payment_methods,omitempty"`
	Items              []GatewayInvoiceItem `json:"items,omitempty"`
	Fees               []GatewayInvoiceFee  `json:"fees,omitempty"`
}

type GatewayInvoiceItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type GatewayInvoiceFee struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}
