package payments

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/app/services/core/fees"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const breakdownCodeBase = "base"

// ServiceResolver finds the stored configuration of a payable service.
type ServiceResolver interface {
	Resolve(ctx context.Context, serviceID string) catalog.Resolution
}

// expectedCharges prices the service from its stored configuration. The
// base is the entered cost for services with a cost field, otherwise the
// configured base amount. A convenience fee of -1 means the fee schedule
// could not be read and any client fee is accepted.
func (uc *paymentUsecase) expectedCharges(ctx context.Context, config *models.ServiceConfig, request *requests.InitiatePayment) (map[string]int64, error) {
	var base decimal.Decimal
	if costField, ok := config.CostField(); ok {
		amount, err := costFromFormData(request.FormData, costField.ID)
		if err != nil {
			return nil, exceptions.ErrClientCustomMessage(fmt.Errorf("%s: %w", costField.Label, err))
		}
		base = amount
	} else {
		amount, err := configuredAmount(config.BaseAmount)
		if err != nil {
			return nil, exceptions.ErrServerProcess(fmt.Errorf("service %s base amount: %w", config.ID, err))
		}
		base = amount
	}

	processing, err := configuredAmount(config.ProcessingFee)
	if err != nil {
		return nil, exceptions.ErrServerProcess(fmt.Errorf("service %s processing fee: %w", config.ID, err))
	}

	baseMinor, err := fees.MinorUnits(base)
	if err != nil {
		return nil, exceptions.ErrBreakdownOverflow(err)
	}
	charges := map[string]int64{
		breakdownCodeBase:          baseMinor,
		breakdownCodeProcessingFee: fees.ToMinorUnits(processing),
	}

	settings, err := uc.convenienceFeeSettings(ctx)
	if err != nil {
		uc.Log.Warn("paymentUsecase.InitiatePayment settings unavailable, convenience fee not verified",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		charges[breakdownCodeConvenienceFee] = -1
		return charges, nil
	}

	quote := fees.ComputeConvenienceFee(fees.ScheduleFor(settings, nil, request.PaymentMethod), base.Add(processing))
	charges[breakdownCodeConvenienceFee] = quote.AmountMinor
	return charges, nil
}

// verifyCharges requires each breakdown code at most once with exactly the
// expected amount. Codes the portal never prices are rejected.
func verifyCharges(items []requests.PaymentBreakdownItem, expected map[string]int64) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		want, known := expected[item.Code]
		if !known || seen[item.Code] {
			return exceptions.ErrPriceMismatch(item.Code, item.AmountMinor, 0)
		}
		seen[item.Code] = true

		if want < 0 {
			continue
		}
		if item.AmountMinor != want {
			return exceptions.ErrPriceMismatch(item.Code, item.AmountMinor, want)
		}
	}

	for code, want := range expected {
		if !seen[code] && want > 0 {
			return exceptions.ErrPriceMismatch(code, 0, want)
		}
	}
	return nil
}

func (uc *paymentUsecase) convenienceFeeSettings(ctx context.Context) (*models.ConvenienceFeeSettings, error) {
	if uc.Settings == nil {
		return nil, fmt.Errorf("settings are not configured")
	}
	publicSettings, err := uc.Settings.GetPublicSettings(ctx)
	if err != nil {
		return nil, err
	}
	return toConvenienceFeeSettings(publicSettings), nil
}

// costFromFormData reads the entered cost the way the portal form sends it,
// as text, and accepts a JSON number as well.
func costFromFormData(formData map[string]interface{}, fieldID string) (decimal.Decimal, error) {
	switch value := formData[fieldID].(type) {
	case string:
		return fees.ParseAmount(value)
	case float64:
		return fees.ParseAmount(fees.MajorFromFloat(value).String())
	case nil:
		return decimal.Zero, fmt.Errorf("cost is missing")
	default:
		return decimal.Zero, fmt.Errorf("cost has unexpected type %T", value)
	}
}

func configuredAmount(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return decimal.Zero, fmt.Errorf("amount %v is not a non-negative number", amount)
	}
	major := fees.MajorFromFloat(amount)
	if _, err := fees.MinorUnits(major); err != nil {
		return decimal.Zero, err
	}
	return major, nil
}
