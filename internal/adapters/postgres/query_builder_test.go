package postgres

import (
	"listings-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestApplyFiltersEmpty(t *testing.T) {
	where, args := applyFilters(domain.ApartmentFilters{})
	assert.Empty(t, where, "no filters must produce an open predicate")
	assert.Empty(t, args)
}

func TestApplyFiltersPriceRangeAndBedrooms(t *testing.T) {
	filters := domain.ApartmentFilters{
		MinPrice: floatPtr(1000),
		MaxPrice: floatPtr(2000),
		Bedrooms: intPtr(2),
	}

	where, args := applyFilters(filters)

	assert.Equal(t, "WHERE a.price >= $1 AND a.price <= $2 AND a.bedrooms = $3", where)
	assert.Equal(t, []interface{}{float64(1000), float64(2000), 2}, args)
}

func TestApplyFiltersSearch(t *testing.T) {
	filters := domain.ApartmentFilters{Search: "Marina"}

	where, args := applyFilters(filters)

	assert.Equal(t, "WHERE (a.unit_name ILIKE $1 OR a.unit_number ILIKE $1 OR a.project ILIKE $1)", where)
	assert.Equal(t, []interface{}{"%Marina%"}, args)
}

func TestApplyFiltersSearchEscapesLikeWildcards(t *testing.T) {
	// "%" и "_" в поисковой строке - обычные символы, а не шаблоны LIKE
	filters := domain.ApartmentFilters{Search: `50%_off\`}

	_, args := applyFilters(filters)

	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestApplyFiltersAllConstraints(t *testing.T) {
	filters := domain.ApartmentFilters{
		Search:      "tower",
		MinPrice:    floatPtr(500),
		MaxPrice:    floatPtr(1500),
		MinArea:     floatPtr(40),
		MaxArea:     floatPtr(120),
		Bedrooms:    intPtr(3),
		Bathrooms:   intPtr(2),
		IsAvailable: boolPtr(true),
	}

	where, args := applyFilters(filters)

	assert.Equal(t,
		"WHERE (a.unit_name ILIKE $1 OR a.unit_number ILIKE $1 OR a.project ILIKE $1)"+
			" AND a.price >= $2 AND a.price <= $3"+
			" AND a.area >= $4 AND a.area <= $5"+
			" AND a.bedrooms = $6 AND a.bathrooms = $7 AND a.is_available = $8",
		where)
	assert.Len(t, args, 8)
	assert.Equal(t, "%tower%", args[0])
	assert.Equal(t, true, args[7])
}

func TestOrderByClause(t *testing.T) {
	testCases := []struct {
		name     string
		filters  domain.ApartmentFilters
		expected string
	}{
		{
			name:     "default is created_at descending",
			filters:  domain.ApartmentFilters{},
			expected: "ORDER BY a.created_at DESC",
		},
		{
			name:     "price ascending",
			filters:  domain.ApartmentFilters{SortBy: domain.SortByPrice, SortDirection: domain.SortAsc},
			expected: "ORDER BY a.price ASC",
		},
		{
			name:     "unknown field falls back to created_at",
			filters:  domain.ApartmentFilters{SortBy: "unit_name; DROP TABLE apartments"},
			expected: "ORDER BY a.created_at DESC",
		},
		{
			name:     "direction is case-insensitive",
			filters:  domain.ApartmentFilters{SortBy: domain.SortByArea, SortDirection: "asc"},
			expected: "ORDER BY a.area ASC",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, orderByClause(tc.filters))
		})
	}
}
