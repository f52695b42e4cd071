package responses

import "time"

type FormField struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Reminder    string   `json:"reminder,omitempty"`
}

type ServiceConfig struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	FormFields    []FormField `json:"formFields"`
	BaseAmount    float64     `json:"baseAmount"`
	ProcessingFee float64     `json:"processingFee"`
}

type CustomService struct {
	ServiceConfig
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
