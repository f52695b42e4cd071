// Package fees computes the payment method dependent convenience fee.
//
// The calculator never fetches settings itself. Callers turn whatever they
// fetched (or failed to fetch) into a Schedule with ScheduleFor, and an
// Unavailable schedule always yields a zero fee so a settings outage never
// blocks checkout.
package fees

import (
	"errors"
	"fmt"
	"lgu-portal-service/internal/app/models"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	ErrAmountOutOfRange  = errors.New("amount does not fit in minor units")
	ErrAmountNotPositive = errors.New("amount is not greater than zero")
)

// Schedule is either Available with the fee parameters of one payment
// method, or Unavailable.
type Schedule struct {
	available bool
	params    models.FeeParams
}

func Available(params models.FeeParams) Schedule {
	return Schedule{available: true, params: params}
}

func Unavailable() Schedule {
	return Schedule{}
}

func (s Schedule) IsAvailable() bool {
	return s.available
}

func (s Schedule) Params() (models.FeeParams, bool) {
	return s.params, s.available
}

// ScheduleFor picks the parameters for method out of a settings fetch result.
func ScheduleFor(settings *models.ConvenienceFeeSettings, fetchErr error, method string) Schedule {
	if fetchErr != nil || settings == nil {
		return Unavailable()
	}
	params := settings.ForMethod(method)
	if params == nil {
		return Unavailable()
	}
	return Available(*params)
}

type QuoteStatus string

const (
	QuoteComputed QuoteStatus = "computed"
	QuoteWaived   QuoteStatus = "waived"
)

type Quote struct {
	Status      QuoteStatus
	AmountMinor int64
}

// ComputeConvenienceFee returns max(percent/100*amount + fixed, min) for the
// amount in major units, converted to minor units once at the end.
func ComputeConvenienceFee(schedule Schedule, baseAndProcessingMajor decimal.Decimal) Quote {
	params, ok := schedule.Params()
	if !ok {
		return Quote{Status: QuoteWaived, AmountMinor: 0}
	}

	percent := decimal.NewFromFloat(params.Percent)
	fixed := decimal.NewFromFloat(params.Fixed)
	minimum := decimal.NewFromFloat(params.Min)

	computed := percent.Div(hundred).Mul(baseAndProcessingMajor).Add(fixed)
	computed = decimal.Max(computed, minimum)

	amountMinor, err := MinorUnits(computed)
	if err != nil {
		// Saturate so any total built from this fee fails SumMinor.
		amountMinor = math.MaxInt64
	}
	if amountMinor < 0 {
		amountMinor = 0
	}
	return Quote{Status: QuoteComputed, AmountMinor: amountMinor}
}

// ToMinorUnits converts a major unit amount to an integer count of minor
// units, rounding half away from zero. The amount must already be known to
// fit, see MinorUnits.
func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Mul(hundred).Round(0).IntPart()
}

// MinorUnits is ToMinorUnits for amounts that have not been range checked.
func MinorUnits(major decimal.Decimal) (int64, error) {
	scaled := major.Mul(hundred).Round(0)
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, major.String())
	}
	return scaled.IntPart(), nil
}

// ParseAmount reads a user entered amount such as "1,500.50". The amount
// must be positive and representable in minor units.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountNotPositive, cleaned)
	}
	if _, err := MinorUnits(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// SumMinor adds minor unit amounts and fails instead of wrapping around.
func SumMinor(amounts ...int64) (int64, error) {
	var sum int64
	for _, amount := range amounts {
		if (amount > 0 && sum > math.MaxInt64-amount) || (amount < 0 && sum < math.MinInt64-amount) {
			return 0, ErrAmountOutOfRange
		}
		sum += amount
	}
	return sum, nil
}

// MajorFromFloat converts a configured amount using its shortest decimal
// representation, so 0.1 stays 0.1.
func MajorFromFloat(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}
