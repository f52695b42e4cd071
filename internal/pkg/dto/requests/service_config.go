package requests

type FormField struct {
	ID          string   `json:"id" validate:"required,field_id"`
	Label       string   `json:"label" validate:"required,max=200"`
	Type        string   `json:"type" validate:"required,field_type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty" validate:"omitempty,dive,required,max=200"`
	Placeholder string   `json:"placeholder,omitempty" validate:"max=200"`
	Reminder    string   `json:"reminder,omitempty" validate:"max=500"`
}

type CreateCustomService struct {
	ID            string      `json:"id" validate:"required,service_id,max=64"`
	Title         string      `json:"title" validate:"required,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	FormFields    []FormField `json:"formFields" validate:"required,min=1,dive"`
	BaseAmount    float64     `json:"baseAmount" validate:"gte=0"`
	ProcessingFee float64     `json:"processingFee" validate:"gte=0"`
	Enabled       bool        `json:"enabled"`
}

type UpdateCustomService struct {
	Title         string      `json:"title" validate:"required,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	FormFields    []FormField `json:"formFields" validate:"required,min=1,dive"`
	BaseAmount    float64     `json:"baseAmount" validate:"gte=0"`
	ProcessingFee float64     `json:"processingFee" validate:"gte=0"`
}

type UpsertFormConfig struct {
	Title         string      `json:"title" validate:"required,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	FormFields    []FormField `json:"formFields" validate:"required,min=1,dive"`
	BaseAmount    float64     `json:"baseAmount" validate:"gte=0"`
	ProcessingFee float64     `json:"processingFee" validate:"gte=0"`
}
