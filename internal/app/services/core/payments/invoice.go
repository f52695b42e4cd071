package payments

import (
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/fees"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"net/url"

	"github.com/shopspring/decimal"
)

const (
	breakdownCodeConvenienceFee = "convenience_fee"
	breakdownCodeProcessingFee  = "processing_fee"
)

// gatewayChannels maps portal payment methods to gateway channel codes.
var gatewayChannels = map[string][]string{
	"card":            {"CREDIT_CARD"},
	"digital-wallets": {"GCASH", "PAYMAYA", "GRABPAY", "SHOPEEPAY"},
	"dob":             {"DD_BPI", "DD_UBP", "DD_RCBC"},
	"qrph":            {"QRPH"},
}

func validateBreakdown(items []requests.PaymentBreakdownItem, totalAmountMinor int64) error {
	if totalAmountMinor <= 0 {
		return exceptions.ErrInvalidTotalAmount(totalAmountMinor)
	}

	amounts := make([]int64, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.AmountMinor)
	}
	sum, err := fees.SumMinor(amounts...)
	if err != nil {
		return exceptions.ErrBreakdownOverflow(err)
	}
	if sum != totalAmountMinor {
		return exceptions.ErrBreakdownMismatch(sum, totalAmountMinor)
	}
	return nil
}

func (uc *paymentUsecase) buildInvoiceRequest(transaction *models.Transaction) (*requests.GatewayCreateInvoice, error) {
	successURL, err := withTransactionID(transaction.SuccessURL, transaction.ID)
	if err != nil {
		return nil, err
	}
	cancelURL, err := withTransactionID(transaction.CancelURL, transaction.ID)
	if err != nil {
		return nil, err
	}

	invoice := &requests.GatewayCreateInvoice{
		ExternalID:         transaction.ID,
		Amount:             toMajorUnits(transaction.TotalAmountMinor),
		Currency:           transaction.Currency,
		Description:        transaction.ServiceName,
		InvoiceDuration:    uc.InternalConfig.PaymentGateway.PaymentExpiredTimeInMinutes * 60,
		SuccessRedirectURL: successURL,
		FailureRedirectURL: cancelURL,
		PaymentMethods:     gatewayChannels[transaction.PaymentMethod],
	}

	for _, item := range transaction.Breakdown {
		switch item.Code {
		case breakdownCodeConvenienceFee, breakdownCodeProcessingFee:
			invoice.Fees = append(invoice.Fees, requests.GatewayInvoiceFee{
				Type:  item.Label,
				Value: toMajorUnits(item.AmountMinor),
			})
		default:
			invoice.Items = append(invoice.Items, requests.GatewayInvoiceItem{
				Name:     item.Label,
				Quantity: 1,
				Price:    toMajorUnits(item.AmountMinor),
			})
		}
	}
	return invoice, nil
}

// withTransactionID adds transactionId to a return URL so the portal can
// find the transaction when the gateway sends the citizen back.
func withTransactionID(rawURL, transactionID string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("transactionId", transactionID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func toMajorUnits(amountMinor int64) float64 {
	return decimal.New(amountMinor, -2).InexactFloat64()
}
