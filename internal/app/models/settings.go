package models

import "lgu-portal-service/internal/pkg/constvars"

// FeeParams are in major units, Percent in percentage points.
type FeeParams struct {
	Percent float64 `json:"percent" bson:"percent"`
	Fixed   float64 `json:"fixed" bson:"fixed"`
	Min     float64 `json:"min" bson:"min"`
}

type ConvenienceFeeSettings struct {
	Card           *FeeParams `json:"card,omitempty" bson:"card,omitempty"`
	DigitalWallets *FeeParams `json:"digitalWallets,omitempty" bson:"digitalWallets,omitempty"`
	DOB            *FeeParams `json:"dob,omitempty" bson:"dob,omitempty"`
	QRPH           *FeeParams `json:"qrph,omitempty" bson:"qrph,omitempty"`
}

// ForMethod maps a payment method to its settings entry.
func (s ConvenienceFeeSettings) ForMethod(method string) *FeeParams {
	switch method {
	case constvars.PaymentMethodCard:
		return s.Card
	case constvars.PaymentMethodDigitalWallets:
		return s.DigitalWallets
	case constvars.PaymentMethodDOB:
		return s.DOB
	case constvars.PaymentMethodQRPH:
		return s.QRPH
	}
	return nil
}

type Settings struct {
	ID             string                 `json:"-" bson:"_id"`
	ConvenienceFee ConvenienceFeeSettings `json:"convenienceFee" bson:"convenienceFee"`
	TimeModel      `json:"-" bson:",inline"`
}
