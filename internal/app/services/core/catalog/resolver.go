package catalog

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	SourceCustomService = "custom_service"
	SourceFormConfig    = "form_config"
	SourceBuiltin       = "builtin"
)

// Resolution is the outcome of a lookup. A nil Config means the service
// does not exist in any source.
type Resolution struct {
	Config          *models.ServiceConfig
	IsCustomService bool
	Source          string
}

func (r Resolution) Found() bool {
	return r.Config != nil
}

type Resolver struct {
	lookup  contracts.ServiceLookupClient
	builtin *Catalog
	Log     *zap.Logger
}

func NewResolver(lookup contracts.ServiceLookupClient, builtin *Catalog, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup:  lookup,
		builtin: builtin,
		Log:     logger,
	}
}

// Resolve tries the public custom service first, then the general form
// configuration, then the built-in catalog. Lookup failures fall through to
// the next source. Nothing is cached between calls.
func (r *Resolver) Resolve(ctx context.Context, serviceID string) Resolution {
	requestID := utils.GetRequestID(ctx)
	r.Log.Info("Resolver.Resolve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	if r.lookup != nil {
		config, err := r.lookup.GetPublicService(ctx, serviceID)
		if err != nil {
			r.Log.Warn("Resolver.Resolve custom service lookup failed, falling back",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingServiceIDKey, serviceID),
				zap.Error(err),
			)
		} else if r.isWellFormed(requestID, serviceID, config, SourceCustomService) {
			return r.resolved(requestID, serviceID, config, true, SourceCustomService)
		}

		config, err = r.lookup.GetFormConfig(ctx, serviceID)
		if err != nil {
			r.Log.Warn("Resolver.Resolve form configuration lookup failed, falling back",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingServiceIDKey, serviceID),
				zap.Error(err),
			)
		} else if r.isWellFormed(requestID, serviceID, config, SourceFormConfig) {
			return r.resolved(requestID, serviceID, config, false, SourceFormConfig)
		}
	}

	if r.builtin != nil {
		if config, ok := r.builtin.Lookup(serviceID); ok {
			return r.resolved(requestID, serviceID, config, false, SourceBuiltin)
		}
	}

	r.Log.Info("Resolver.Resolve service not found",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	return Resolution{}
}

func (r *Resolver) resolved(requestID, serviceID string, config *models.ServiceConfig, isCustom bool, source string) Resolution {
	if config.ID == "" {
		config.ID = serviceID
	}
	r.Log.Info("Resolver.Resolve succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, config.ID),
		zap.String(constvars.LoggingSourceKey, source),
	)
	return Resolution{Config: config, IsCustomService: isCustom, Source: source}
}

// isWellFormed requires a title and a form field array. A config that breaks
// a form field rule is skipped with a warning naming the rule.
func (r *Resolver) isWellFormed(requestID, serviceID string, config *models.ServiceConfig, source string) bool {
	if config == nil {
		return false
	}
	if config.Title == "" || config.FormFields == nil {
		r.Log.Warn("Resolver.Resolve skipping config without title or form fields",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.String(constvars.LoggingSourceKey, source),
		)
		return false
	}
	if err := ValidateFormFields(config.FormFields); err != nil {
		r.Log.Warn("Resolver.Resolve skipping config with invalid form fields",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.String(constvars.LoggingSourceKey, source),
			zap.Error(err),
		)
		return false
	}
	return true
}
