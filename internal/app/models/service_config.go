package models

// Form field types understood by the portal forms.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeTextarea = "textarea"
	FieldTypeFile     = "file"
	FieldTypeDate     = "date"
	FieldTypeCost     = "cost"
	FieldTypePassword = "password"
	FieldTypeRadio    = "radio"
	FieldTypeCheckbox = "checkbox"
)

type FormField struct {
	ID          string   `json:"id" bson:"id" yaml:"id"`
	Label       string   `json:"label" bson:"label" yaml:"label"`
	Type        string   `json:"type" bson:"type" yaml:"type"`
	Required    bool     `json:"required" bson:"required" yaml:"required"`
	Options     []string `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Reminder    string   `json:"reminder,omitempty" bson:"reminder,omitempty" yaml:"reminder,omitempty"`
}

// IsMultiValued reports whether the field stores a list of selections.
func (f FormField) IsMultiValued() bool {
	return f.Type == FieldTypeCheckbox
}

// ServiceConfig describes a payable service. Amounts are in major units.
type ServiceConfig struct {
	ID            string      `json:"id" bson:"_id" yaml:"id"`
	Title         string      `json:"title" bson:"title" yaml:"title"`
	Description   string      `json:"description" bson:"description" yaml:"description"`
	FormFields    []FormField `json:"formFields" bson:"formFields" yaml:"formFields"`
	BaseAmount    float64     `json:"baseAmount" bson:"baseAmount" yaml:"baseAmount"`
	ProcessingFee float64     `json:"processingFee" bson:"processingFee" yaml:"processingFee"`
}

// CostField returns the single cost field of the service, if any.
func (c *ServiceConfig) CostField() (FormField, bool) {
	for _, field := range c.FormFields {
		if field.Type == FieldTypeCost {
			return field, true
		}
	}
	return FormField{}, false
}

func (c *ServiceConfig) Field(fieldID string) (FormField, bool) {
	for _, field := range c.FormFields {
		if field.ID == fieldID {
			return field, true
		}
	}
	return FormField{}, false
}

// CustomService is an admin defined service. Only enabled services are
// visible on the public lookup path.
type CustomService struct {
	ID            string      `bson:"_id"`
	Title         string      `bson:"title"`
	Description   string      `bson:"description"`
	FormFields    []FormField `bson:"formFields"`
	BaseAmount    float64     `bson:"baseAmount"`
	ProcessingFee float64     `bson:"processingFee"`
	Enabled       bool        `bson:"enabled"`
	TimeModel     `bson:",inline"`
}

func (s *CustomService) ToServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		FormFields:    s.FormFields,
		BaseAmount:    s.BaseAmount,
		ProcessingFee: s.ProcessingFee,
	}
}

// FormConfig is the general form configuration keyed by service id.
type FormConfig struct {
	ServiceID     string      `bson:"_id"`
	Title         string      `bson:"title"`
	Description   string      `bson:"description"`
	FormFields    []FormField `bson:"formFields"`
	BaseAmount    float64     `bson:"baseAmount"`
	ProcessingFee float64     `bson:"processingFee"`
	TimeModel     `bson:",inline"`
}

func (c *FormConfig) ToServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		ID:            c.ServiceID,
		Title:         c.Title,
		Description:   c.Description,
		FormFields:    c.FormFields,
		BaseAmount:    c.BaseAmount,
		ProcessingFee: c.ProcessingFee,
	}
}
