package stepper

import (
	"lgu-portal-service/internal/app/services/core/fees"
	"lgu-portal-service/internal/pkg/dto/requests"

	"github.com/shopspring/decimal"
)

const (
	CodeBase           = "base"
	CodeTax            = "tax"
	CodeConvenienceFee = "convenience_fee"
	CodeProcessingFee  = "processing_fee"
	CodeDiscount       = "discount"
	CodeOther          = "other"
)

type Breakdown struct {
	Items            []requests.PaymentBreakdownItem
	TotalAmountMinor int64
	ConvenienceFee   fees.Quote
}

// buildBreakdown always lists the base and processing fee, and adds the
// convenience fee only when it is above zero. The total is the exact sum of
// the items, or an error when it does not fit in minor units.
func buildBreakdown(serviceTitle string, base, processing decimal.Decimal, quote fees.Quote) (Breakdown, error) {
	items := []requests.PaymentBreakdownItem{
		{Code: CodeBase, Label: serviceTitle, AmountMinor: fees.ToMinorUnits(base)},
		{Code: CodeProcessingFee, Label: "Processing fee", AmountMinor: fees.ToMinorUnits(processing)},
	}
	if quote.AmountMinor > 0 {
		items = append(items, requests.PaymentBreakdownItem{
			Code:        CodeConvenienceFee,
			Label:       "Convenience fee",
			AmountMinor: quote.AmountMinor,
		})
	}

	amounts := make([]int64, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.AmountMinor)
	}
	total, err := fees.SumMinor(amounts...)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{Items: items, TotalAmountMinor: total, ConvenienceFee: quote}, nil
}
