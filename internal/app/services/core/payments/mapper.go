package payments

import (
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

func toModelBreakdown(items []requests.PaymentBreakdownItem) []models.BreakdownItem {
	breakdown := make([]models.BreakdownItem, 0, len(items))
	for _, item := range items {
		breakdown = append(breakdown, models.BreakdownItem{
			Code:        item.Code,
			Label:       item.Label,
			AmountMinor: item.AmountMinor,
		})
	}
	return breakdown
}

func toTransactionResponse(transaction *models.Transaction) *responses.Transaction {
	breakdown := make([]responses.PaymentBreakdownItem, 0, len(transaction.Breakdown))
	for _, item := range transaction.Breakdown {
		breakdown = append(breakdown, responses.PaymentBreakdownItem{
			Code:        item.Code,
			Label:       item.Label,
			AmountMinor: item.AmountMinor,
		})
	}

	return &responses.Transaction{
		TransactionID:    transaction.ID,
		ServiceID:        transaction.ServiceID,
		ServiceName:      transaction.ServiceName,
		Status:           string(transaction.Status),
		PaymentMethod:    transaction.PaymentMethod,
		Breakdown:        breakdown,
		TotalAmountMinor: transaction.TotalAmountMinor,
		Currency:         transaction.Currency,
		FormData:         transaction.FormData,
		CheckoutURL:      transaction.CheckoutURL,
		PaidAt:           transaction.PaidAt,
		CreatedAt:        transaction.CreatedAt,
		UpdatedAt:        transaction.UpdatedAt,
	}
}

func toConvenienceFeeSettings(publicSettings *responses.PublicSettings) *models.ConvenienceFeeSettings {
	if publicSettings == nil {
		return nil
	}
	fee := publicSettings.ConvenienceFee
	return &models.ConvenienceFeeSettings{
		Card:           toFeeParams(fee.Card),
		DigitalWallets: toFeeParams(fee.DigitalWallets),
		DOB:            toFeeParams(fee.DOB),
		QRPH:           toFeeParams(fee.QRPH),
	}
}

func toFeeParams(params *responses.FeeParams) *models.FeeParams {
	if params == nil {
		return nil
	}
	return &models.FeeParams{Percent: params.Percent, Fixed: params.Fixed, Min: params.Min}
}
