package catalog

import (
	"fmt"
	"lgu-portal-service/internal/app/models"
)

var knownFieldTypes = map[string]bool{
	models.FieldTypeText: true, models.FieldTypeEmail: true, models.FieldTypeTel: true,
	models.FieldTypeNumber: true, models.FieldTypeSelect: true, models.FieldTypeTextarea: true,
	models.FieldTypeFile: true, models.FieldTypeDate: true, models.FieldTypeCost: true,
	models.FieldTypePassword: true, models.FieldTypeRadio: true, models.FieldTypeCheckbox: true,
}

// ValidateFormFields checks the structural rules shared by every source of
// service configuration.
func ValidateFormFields(fields []models.FormField) error {
	seen := make(map[string]bool, len(fields))
	costFields := 0

	for _, field := range fields {
		if field.ID == "" {
			return fmt.Errorf("field %q has no id", field.Label)
		}
		if seen[field.ID] {
			return fmt.Errorf("field id %s is used more than once", field.ID)
		}
		seen[field.ID] = true

		if !knownFieldTypes[field.Type] {
			return fmt.Errorf("field %s has unsupported type %s", field.ID, field.Type)
		}

		switch field.Type {
		case models.FieldTypeCost:
			costFields++
		case models.FieldTypeSelect, models.FieldTypeRadio, models.FieldTypeCheckbox:
			if len(field.Options) == 0 {
				return fmt.Errorf("field %s needs at least one option", field.ID)
			}
		}
	}

	if costFields > 1 {
		return fmt.Errorf("at most one cost field is allowed, found %d", costFields)
	}
	return nil
}
