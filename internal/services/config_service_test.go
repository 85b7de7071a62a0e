package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/testhelpers"
)

func TestConfigOptions(t *testing.T) {
	store := testhelpers.NewMemoryRowStore()
	store.Seed(constants.ConfigSheet,
		[]string{"Category", "Province", "City/Town", "Property Type", "Duration Hours", "Type of service to be performed"},
		[][]string{
			{"Deep Clean", "Buenos Aires", "CABA, La Plata", "Apartment", "2", "Regular"},
			{"Move Out", "Buenos Aires", "CABA", "House", "4", "Deep"},
			{"Deep Clean", "Córdoba", "Córdoba Capital", "", "4", ""},
			{"", "", "", "PH", "6", "Regular"},
		})

	svc := NewConfigService(repositories.NewConfigRepository(store))
	resp, err := svc.Options(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, []string{"Deep Clean", "Move Out"}, resp.Categories)
	assert.Equal(t, []string{"Buenos Aires", "Córdoba"}, resp.Provinces)
	assert.Equal(t, []string{"Apartment", "House", "PH"}, resp.PropertyTypes)
	assert.Equal(t, []string{"2", "4", "6"}, resp.DurationHours)
	assert.Equal(t, []string{"Regular", "Deep"}, resp.ServiceTypes)

	// City cells may carry comma-separated lists; grouping dedupes per
	// province in first-seen order.
	assert.Equal(t, []string{"CABA", "La Plata"}, resp.CitiesByProvince["Buenos Aires"])
	assert.Equal(t, []string{"Córdoba Capital"}, resp.CitiesByProvince["Córdoba"])
}

func TestConfigOptionsMissingColumns(t *testing.T) {
	store := testhelpers.NewMemoryRowStore()
	store.Seed(constants.ConfigSheet, []string{"Category"}, [][]string{{"Deep Clean"}})

	svc := NewConfigService(repositories.NewConfigRepository(store))
	resp, err := svc.Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Deep Clean"}, resp.Categories)
	assert.Empty(t, resp.Provinces, "missing columns degrade to empty lists")
	assert.Empty(t, resp.CitiesByProvince)
}
