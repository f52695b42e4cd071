package models

import "time"

type TransactionEvent struct {
	EventType        string            `json:"eventType"`
	TransactionID    string            `json:"transactionId"`
	ServiceID        string            `json:"serviceId"`
	Status           TransactionStatus `json:"status"`
	PaymentMethod    string            `json:"paymentMethod"`
	TotalAmountMinor int64             `json:"totalAmountMinor"`
	OccurredAt       time.Time         `json:"occurredAt"`
}
