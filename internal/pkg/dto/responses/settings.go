package responses

type FeeParams struct {
	Percent float64 `json:"percent"`
	Fixed   float64 `json:"fixed"`
	Min     float64 `json:"min"`
}

type ConvenienceFeeSettings struct {
	Card           *FeeParams `json:"card,omitempty"`
	DigitalWallets *FeeParams `json:"digitalWallets,omitempty"`
	DOB            *FeeParams `json:"dob,omitempty"`
	QRPH           *FeeParams `json:"qrph,omitempty"`
}

type PublicSettings struct {
	ConvenienceFee ConvenienceFeeSettings `json:"convenienceFee"`
}
