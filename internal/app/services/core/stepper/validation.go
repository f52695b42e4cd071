package stepper

import (
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/fees"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// validateForm checks every required field and, when the service has a cost
// field, that the entered cost is a positive amount. All problems are
// reported together.
func validateForm(config *models.ServiceConfig, fields map[string]FieldValue) *ValidationError {
	validationErr := &ValidationError{}

	var missing []string
	for _, field := range config.FormFields {
		if !field.Required {
			continue
		}
		if !fields[field.ID].satisfies(field.Type) {
			missing = append(missing, field.Label)
			validationErr.Fields = append(validationErr.Fields, field.ID)
		}
	}
	if len(missing) > 0 {
		validationErr.Problems = append(validationErr.Problems,
			fmt.Sprintf("Please fill in the required fields: %s.", strings.Join(missing, ", ")))
	}

	if costField, ok := config.CostField(); ok {
		value := fields[costField.ID]
		alreadyMissing := costField.Required && !value.satisfies(costField.Type)
		if _, err := parseCost(value); err != nil && !alreadyMissing {
			validationErr.add(costField.ID, fmt.Sprintf("%s must be an amount greater than zero.", costField.Label))
		}
	}

	if validationErr.empty() {
		return nil
	}
	return validationErr
}

// parseCost reads a user entered amount such as "1,500.50".
func parseCost(value FieldValue) (decimal.Decimal, error) {
	text, ok := value.Text()
	if !ok {
		return decimal.Zero, fmt.Errorf("cost is not a text value")
	}
	return fees.ParseAmount(text)
}

// effectiveBase is the entered cost when the service has a cost field,
// otherwise the configured base amount.
func effectiveBase(config *models.ServiceConfig, fields map[string]FieldValue) (decimal.Decimal, *ValidationError) {
	if costField, ok := config.CostField(); ok {
		amount, err := parseCost(fields[costField.ID])
		if err != nil {
			validationErr := &ValidationError{}
			validationErr.add(costField.ID, fmt.Sprintf("%s must be an amount greater than zero.", costField.Label))
			return decimal.Zero, validationErr
		}
		return amount, nil
	}

	amount, ok := configuredAmount(config.BaseAmount)
	if !ok {
		validationErr := &ValidationError{}
		validationErr.add("", "This service has an invalid base amount. Please contact the office.")
		return decimal.Zero, validationErr
	}
	return amount, nil
}

func processingFee(config *models.ServiceConfig) (decimal.Decimal, *ValidationError) {
	amount, ok := configuredAmount(config.ProcessingFee)
	if !ok {
		validationErr := &ValidationError{}
		validationErr.add("", "This service has an invalid processing fee. Please contact the office.")
		return decimal.Zero, validationErr
	}
	return amount, nil
}

// configuredAmount accepts finite, non-negative amounts that fit in minor
// units.
func configuredAmount(amount float64) (decimal.Decimal, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return decimal.Zero, false
	}
	major := fees.MajorFromFloat(amount)
	if _, err := fees.MinorUnits(major); err != nil {
		return decimal.Zero, false
	}
	return major, true
}
