package responses

import "time"

type InitiatePayment struct {
	CheckoutURL   string `json:"checkoutUrl"`
	TransactionID string `json:"transactionId"`
}

type CancelPayment struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

type PaymentBreakdownItem struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	AmountMinor int64  `json:"amountMinor"`
}

type Transaction struct {
	TransactionID    string                 `json:"transactionId"`
	ServiceID        string                 `json:"serviceId"`
	ServiceName      string                 `json:"serviceName"`
	Status           string                 `json:"status"`
	PaymentMethod    string                 `json:"paymentMethod"`
	Breakdown        []PaymentBreakdownItem `json:"breakdown"`
	TotalAmountMinor int64                  `json:"totalAmountMinor"`
	Currency         string                 `json:"currency"`
	FormData         map[string]interface{} `json:"formData,omitempty"`
	CheckoutURL      string                 `json:"checkoutUrl,omitempty"`
	PaidAt           *time.Time             `json:"paidAt,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}
