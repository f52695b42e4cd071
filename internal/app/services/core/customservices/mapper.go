package customservices

import (
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
)

func toModelFormFields(fields []requests.FormField) []models.FormField {
	result := make([]models.FormField, 0, len(fields))
	for _, field := range fields {
		result = append(result, models.FormField{
			ID:          field.ID,
			Label:       field.Label,
			Type:        field.Type,
			Required:    field.Required,
			Options:     field.Options,
			Placeholder: field.Placeholder,
			Reminder:    field.Reminder,
		})
	}
	return result
}

func toServiceConfigResponse(config *models.ServiceConfig) *responses.ServiceConfig {
	fields := make([]responses.FormField, 0, len(config.FormFields))
	for _, field := range config.FormFields {
		fields = append(fields, responses.FormField{
			ID:          field.ID,
			Label:       field.Label,
			Type:        field.Type,
			Required:    field.Required,
			Options:     field.Options,
			Placeholder: field.Placeholder,
			Reminder:    field.Reminder,
		})
	}

	return &responses.ServiceConfig{
		ID:            config.ID,
		Title:         config.Title,
		Description:   config.Description,
		FormFields:    fields,
		BaseAmount:    config.BaseAmount,
		ProcessingFee: config.ProcessingFee,
	}
}

func toCustomServiceResponse(service *models.CustomService) *responses.CustomService {
	return &responses.CustomService{
		ServiceConfig: *toServiceConfigResponse(service.ToServiceConfig()),
		Enabled:       service.Enabled,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
	}
}

func toServiceConfigModel(config *responses.ServiceConfig) *models.ServiceConfig {
	if config == nil {
		return nil
	}
	fields := make([]models.FormField, 0, len(config.FormFields))
	for _, field := range config.FormFields {
		fields = append(fields, models.FormField{
			ID:          field.ID,
			Label:       field.Label,
			Type:        field.Type,
			Required:    field.Required,
			Options:     field.Options,
			Placeholder: field.Placeholder,
			Reminder:    field.Reminder,
		})
	}

	return &models.ServiceConfig{
		ID:            config.ID,
		Title:         config.Title,
		Description:   config.Description,
		FormFields:    fields,
		BaseAmount:    config.BaseAmount,
		ProcessingFee: config.ProcessingFee,
	}
}
