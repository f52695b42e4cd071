package catalog

import (
	"context"
	"errors"
	"lgu-portal-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockServiceLookup struct {
	mock.Mock
}

func (m *mockServiceLookup) GetPublicService(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	args := m.Called(ctx, serviceID)
	config, _ := args.Get(0).(*models.ServiceConfig)
	return config, args.Error(1)
}

func (m *mockServiceLookup) GetFormConfig(ctx context.Context, serviceID string) (*models.ServiceConfig, error) {
	args := m.Called(ctx, serviceID)
	config, _ := args.Get(0).(*models.ServiceConfig)
	return config, args.Error(1)
}

func customConfig(title string) *models.ServiceConfig {
	return &models.ServiceConfig{
		Title:      title,
		FormFields: []models.FormField{{ID: "name", Label: "Name", Type: "text", Required: true}},
		BaseAmount: 250,
	}
}

func newTestResolver(t *testing.T, lookup *mockServiceLookup) *Resolver {
	t.Helper()
	builtin, err := LoadBuiltinCatalog()
	require.NoError(t, err)
	return NewResolver(lookup, builtin, zap.NewNop())
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("custom service wins and is flagged", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "tricycle-franchise").Return(customConfig("Tricycle Franchise"), nil)

		resolution := newTestResolver(t, lookup).Resolve(ctx, "tricycle-franchise")

		require.True(t, resolution.Found())
		assert.True(t, resolution.IsCustomService)
		assert.Equal(t, SourceCustomService, resolution.Source)
		assert.Equal(t, "tricycle-franchise", resolution.Config.ID)
		lookup.AssertNotCalled(t, "GetFormConfig", mock.Anything, mock.Anything)
	})

	t.Run("custom lookup error falls through to form configuration", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "market-stall").Return(nil, errors.New("503 service unavailable"))
		lookup.On("GetFormConfig", ctx, "market-stall").Return(customConfig("Market Stall Rental"), nil)

		resolution := newTestResolver(t, lookup).Resolve(ctx, "market-stall")

		require.True(t, resolution.Found())
		assert.False(t, resolution.IsCustomService)
		assert.Equal(t, SourceFormConfig, resolution.Source)
		assert.Equal(t, "Market Stall Rental", resolution.Config.Title)
	})

	t.Run("malformed custom record is skipped", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "market-stall").Return(&models.ServiceConfig{Title: "No fields"}, nil)
		lookup.On("GetFormConfig", ctx, "market-stall").Return(customConfig("Market Stall Rental"), nil)

		resolution := newTestResolver(t, lookup).Resolve(ctx, "market-stall")

		assert.Equal(t, SourceFormConfig, resolution.Source)
	})

	t.Run("both lookups failing fall back to builtin catalog", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "business-permits").Return(nil, errors.New("timeout"))
		lookup.On("GetFormConfig", ctx, "business-permits").Return(nil, errors.New("timeout"))

		resolution := newTestResolver(t, lookup).Resolve(ctx, "business-permits")

		require.True(t, resolution.Found())
		assert.Equal(t, SourceBuiltin, resolution.Source)
		assert.False(t, resolution.IsCustomService)
		_, hasCost := resolution.Config.CostField()
		assert.True(t, hasCost)
	})

	t.Run("exhausted sources yield nil config", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "unknown-service").Return(nil, nil)
		lookup.On("GetFormConfig", ctx, "unknown-service").Return(nil, nil)

		resolution := newTestResolver(t, lookup).Resolve(ctx, "unknown-service")

		assert.False(t, resolution.Found())
		assert.Nil(t, resolution.Config)
	})

	t.Run("no caching between calls", func(t *testing.T) {
		lookup := new(mockServiceLookup)
		lookup.On("GetPublicService", ctx, "tricycle-franchise").Return(customConfig("Tricycle Franchise"), nil).Twice()

		resolver := newTestResolver(t, lookup)
		resolver.Resolve(ctx, "tricycle-franchise")
		resolver.Resolve(ctx, "tricycle-franchise")

		lookup.AssertNumberOfCalls(t, "GetPublicService", 2)
	})
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	builtin, err := LoadBuiltinCatalog()
	require.NoError(t, err)

	first, ok := builtin.Lookup("barangay-clearance")
	require.True(t, ok)
	first.Title = "changed"
	first.FormFields[0].Label = "changed"

	second, _ := builtin.Lookup("barangay-clearance")
	assert.Equal(t, "Barangay Clearance", second.Title)
	assert.Equal(t, "Full Name", second.FormFields[0].Label)
}

func TestBuiltinCatalog_ContainsStandardServices(t *testing.T) {
	builtin, err := LoadBuiltinCatalog()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"business-permits",
		"real-property-tax",
		"community-tax-certificate",
		"building-permit",
		"barangay-clearance",
	}, builtin.IDs())
}

func TestParseCatalog_RejectsTwoCostFields(t *testing.T) {
	raw := []byte(`
services:
  - id: bad
    title: Bad
    formFields:
      - {id: a, label: A, type: cost}
      - {id: b, label: B, type: cost}
`)
	_, err := ParseCatalog(raw)
	assert.Error(t, err)
}

func TestValidateFormFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []models.FormField
		wantErr bool
	}{
		{"valid", []models.FormField{{ID: "a", Type: "text"}, {ID: "b", Type: "select", Options: []string{"x"}}}, false},
		{"duplicate id", []models.FormField{{ID: "a", Type: "text"}, {ID: "a", Type: "email"}}, true},
		{"unknown type", []models.FormField{{ID: "a", Type: "color"}}, true},
		{"select without options", []models.FormField{{ID: "a", Type: "radio"}}, true},
		{"missing id", []models.FormField{{Label: "A", Type: "text"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormFields(tt.fields)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolver_WarnsOnInvalidFormFields(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	builtin, err := LoadBuiltinCatalog()
	require.NoError(t, err)

	broken := customConfig("Two Costs")
	broken.FormFields = []models.FormField{
		{ID: "amount", Label: "Amount", Type: models.FieldTypeCost},
		{ID: "extra", Label: "Extra", Type: models.FieldTypeCost},
	}
	lookup := new(mockServiceLookup)
	lookup.On("GetPublicService", ctx, "market-stall").Return(broken, nil)
	lookup.On("GetFormConfig", ctx, "market-stall").Return(nil, nil)

	resolution := NewResolver(lookup, builtin, zap.New(core)).Resolve(ctx, "market-stall")

	assert.False(t, resolution.Found())
	entries := logs.FilterMessage("Resolver.Resolve skipping config with invalid form fields").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, SourceCustomService, fields["source"])
	assert.Equal(t, "market-stall", fields["service_id"])
	assert.Contains(t, fields["error"], "at most one cost field")
}
