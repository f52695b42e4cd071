package requests

type FeeParams struct {
	Percent float64 `json:"percent" validate:"gte=0,lte=100"`
	Fixed   float64 `json:"fixed" validate:"gte=0"`
	Min     float64 `json:"min" validate:"gte=0"`
}

type ConvenienceFeeSettings struct {
	Card           *FeeParams `json:"card,omitempty" validate:"omitempty"`
	DigitalWallets *FeeParams `json:"digitalWallets,omitempty" validate:"omitempty"`
	DOB            *FeeParams `json:"dob,omitempty" validate:"omitempty"`
	QRPH           *FeeParams `json:"qrph,omitempty" validate:"omitempty"`
}

type UpdateSettings struct {
	ConvenienceFee ConvenienceFeeSettings `json:"convenienceFee" validate:"required"`
}
