package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFiltersKnownEnums(t *testing.T) {
	filters, err := catalogFilters(CatalogParams{Type: "apto", Purpose: "venda"})
	require.NoError(t, err)
	assert.Equal(t, []string{"type = 'apto'", "purpose = 'venda'"}, filters)
}

func TestCatalogFiltersAllAndEmptyAreUnfiltered(t *testing.T) {
	filters, err := catalogFilters(CatalogParams{Type: "all", Purpose: ""})
	require.NoError(t, err)
	assert.Empty(t, filters)
}

func TestCatalogFiltersRejectUnknownValues(t *testing.T) {
	_, err := catalogFilters(CatalogParams{Type: "casa' OR type != '"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized property type")

	_, err = catalogFilters(CatalogParams{Purpose: "venda'"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized purpose")
}
