package requests

type PaymentBreakdownItem struct {
	Code        string `json:"code" validate:"required,breakdown_code"`
	Label       string `json:"label" validate:"required,max=200"`
	AmountMinor int64  `json:"amountMinor" validate:"gte=0"`
}

// InitiatePayment is the payload the stepper submits once every pending
// file has been uploaded. FormData values are strings or string arrays.
type InitiatePayment struct {
	ServiceID        string                 `json:"serviceId" validate:"required,service_id"`
	ServiceName      string                 `json:"serviceName" validate:"required,max=200"`
	Breakdown        []PaymentBreakdownItem `json:"breakdown" validate:"required,min=1,dive"`
	TotalAmountMinor int64                  `json:"totalAmountMinor" validate:"gt=0"`
	FormData         map[string]interface{} `json:"formData"`
	PaymentMethod    string                 `json:"paymentMethod" validate:"required,payment_method"`
	SuccessURL       string                 `json:"successUrl" validate:"required,url"`
	CancelURL        string                 `json:"cancelUrl" validate:"required,url"`
}

type ListTransactions struct {
	Pagination
	Status    string `json:"status" validate:"omitempty,oneof=pending awaiting_payment paid cancelled failed expired"`
	ServiceID string `json:"service_id" validate:"omitempty,service_id"`
}
