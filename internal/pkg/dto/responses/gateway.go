package responses

type GatewayInvoice struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	InvoiceURL  string  `json:"invoice_url"`
	ExpiryDate  string  `json:"expiry_date,omitempty"`
	Description string  `json:"description,omitempty"`
}

type GatewayError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
