package catalog

import (
	_ "embed"
	"fmt"
	"lgu-portal-service/internal/app/models"

	"gopkg.in/yaml.v3"
)

//go:embed builtin_services.yaml
var builtinServicesYAML []byte

type catalogFile struct {
	Services []models.ServiceConfig `yaml:"services"`
}

// Catalog is the static list of standard services offered by every LGU.
type Catalog struct {
	services map[string]models.ServiceConfig
	order    []string
}

func LoadBuiltinCatalog() (*Catalog, error) {
	return ParseCatalog(builtinServicesYAML)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse service catalog: %w", err)
	}

	catalog := &Catalog{services: make(map[string]models.ServiceConfig, len(file.Services))}
	for _, service := range file.Services {
		if service.ID == "" {
			return nil, fmt.Errorf("parse service catalog: service without id")
		}
		if _, exists := catalog.services[service.ID]; exists {
			return nil, fmt.Errorf("parse service catalog: duplicate service %s", service.ID)
		}
		if err := ValidateFormFields(service.FormFields); err != nil {
			return nil, fmt.Errorf("parse service catalog: service %s: %w", service.ID, err)
		}
		catalog.services[service.ID] = service
		catalog.order = append(catalog.order, service.ID)
	}
	return catalog, nil
}

// Lookup returns a copy of the service so callers cannot alter the catalog.
func (c *Catalog) Lookup(serviceID string) (*models.ServiceConfig, bool) {
	service, ok := c.services[serviceID]
	if !ok {
		return nil, false
	}
	return cloneServiceConfig(&service), true
}

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

func cloneServiceConfig(config *models.ServiceConfig) *models.ServiceConfig {
	clone := *config
	clone.FormFields = make([]models.FormField, len(config.FormFields))
	for i, field := range config.FormFields {
		field.Options = append([]string(nil), field.Options...)
		clone.FormFields[i] = field
	}
	return &clone
}
