package models

import "time"

type TransactionStatus string

const (
	TransactionStatusPending         TransactionStatus = "pending"
	TransactionStatusAwaitingPayment TransactionStatus = "awaiting_payment"
	TransactionStatusPaid            TransactionStatus = "paid"
	TransactionStatusCancelled       TransactionStatus = "cancelled"
	TransactionStatusFailed          TransactionStatus = "failed"
	TransactionStatusExpired         TransactionStatus = "expired"
)

// IsOpen reports whether the transaction can still be paid or cancelled.
func (s TransactionStatus) IsOpen() bool {
	return s == TransactionStatusPending || s == TransactionStatusAwaitingPayment
}

type BreakdownItem struct {
	Code        string `bson:"code"`
	Label       string `bson:"label"`
	AmountMinor int64  `bson:"amountMinor"`
}

type Transaction struct {
	ID               string                 `bson:"_id"`
	ServiceID        string                 `bson:"serviceId"`
	ServiceName      string                 `bson:"serviceName"`
	PaymentMethod    string                 `bson:"paymentMethod"`
	Breakdown        []BreakdownItem        `bson:"breakdown"`
	TotalAmountMinor int64                  `bson:"totalAmountMinor"`
	Currency         string                 `bson:"currency"`
	FormData         map[string]interface{} `bson:"formData,omitempty"`
	Status           TransactionStatus      `bson:"status"`
	InvoiceID        string                 `bson:"invoiceId,omitempty"`
	CheckoutURL      string                 `bson:"checkoutUrl,omitempty"`
	SuccessURL       string                 `bson:"successUrl"`
	CancelURL        string                 `bson:"cancelUrl"`
	FailureReason    string                 `bson:"failureReason,omitempty"`
	PaidAt           *time.Time             `bson:"paidAt,omitempty"`
	TimeModel        `bson:",inline"`
}

type TransactionFilter struct {
	Status    TransactionStatus
	ServiceID string
	Page      int
	PageSize  int
}
