package rest

import (
	"listings-service/internal/configs"
	"listings-service/internal/core/domain"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPagination = configs.PaginationConfig{DefaultPage: 1, DefaultPageSize: 10}

func TestParseApartmentQueryDefaults(t *testing.T) {
	filters, err := parseApartmentQuery(url.Values{}, testPagination)

	require.NoError(t, err)
	assert.Equal(t, 1, filters.Page)
	assert.Equal(t, 10, filters.Take)
	assert.Equal(t, domain.SortByCreatedAt, filters.SortBy)
	assert.Equal(t, domain.SortDesc, filters.SortDirection)
	assert.Empty(t, filters.Search)
	assert.Nil(t, filters.MinPrice)
	assert.Nil(t, filters.IsAvailable)
}

func TestParseApartmentQueryFullSet(t *testing.T) {
	query := url.Values{}
	query.Set("page", "3")
	query.Set("take", "25")
	query.Set("sortBy", "price")
	query.Set("sortDirection", "asc")
	query.Set("search", "Marina")
	query.Set("minPrice", "1000")
	query.Set("maxPrice", "2000")
	query.Set("bedrooms", "2")
	query.Set("bathrooms", "1")
	query.Set("minArea", "40.5")
	query.Set("maxArea", "120")
	query.Set("isAvailable", "true")

	filters, err := parseApartmentQuery(query, testPagination)

	require.NoError(t, err)
	assert.Equal(t, 3, filters.Page)
	assert.Equal(t, 25, filters.Take)
	assert.Equal(t, domain.SortByPrice, filters.SortBy)
	assert.Equal(t, domain.SortAsc, filters.SortDirection)
	assert.Equal(t, "Marina", filters.Search)
	require.NotNil(t, filters.MinPrice)
	assert.Equal(t, float64(1000), *filters.MinPrice)
	require.NotNil(t, filters.MaxPrice)
	assert.Equal(t, float64(2000), *filters.MaxPrice)
	require.NotNil(t, filters.Bedrooms)
	assert.Equal(t, 2, *filters.Bedrooms)
	require.NotNil(t, filters.MinArea)
	assert.Equal(t, 40.5, *filters.MinArea)
	require.NotNil(t, filters.IsAvailable)
	assert.True(t, *filters.IsAvailable)
}

func TestParseApartmentQueryClampsBadDefaults(t *testing.T) {
	// Невалидная конфигурация дефолтов не должна протекать в окно выборки:
	// нулевой размер страницы дальше по конвейеру означает деление на ноль
	testCases := []struct {
		name         string
		defaults     configs.PaginationConfig
		expectedPage int
		expectedTake int
	}{
		{name: "zero defaults", defaults: configs.PaginationConfig{DefaultPage: 0, DefaultPageSize: 0}, expectedPage: 1, expectedTake: 1},
		{name: "negative defaults", defaults: configs.PaginationConfig{DefaultPage: -1, DefaultPageSize: -10}, expectedPage: 1, expectedTake: 1},
		{name: "oversized page size", defaults: configs.PaginationConfig{DefaultPage: 1, DefaultPageSize: 500}, expectedPage: 1, expectedTake: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filters, err := parseApartmentQuery(url.Values{}, tc.defaults)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedPage, filters.Page)
			assert.Equal(t, tc.expectedTake, filters.Take)
		})
	}
}

func TestParseApartmentQueryRejectsUnknownParams(t *testing.T) {
	query := url.Values{}
	query.Set("pricey", "100")

	_, err := parseApartmentQuery(query, testPagination)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "pricey")
}

func TestParseApartmentQueryClampsTake(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{raw: "0", expected: 1},
		{raw: "-5", expected: 1},
		{raw: "51", expected: 50},
		{raw: "500", expected: 50},
		{raw: "50", expected: 50},
	}

	for _, tc := range testCases {
		query := url.Values{}
		query.Set("take", tc.raw)

		filters, err := parseApartmentQuery(query, testPagination)

		require.NoError(t, err, "take=%s", tc.raw)
		assert.Equal(t, tc.expected, filters.Take, "take=%s", tc.raw)
	}
}

func TestParseApartmentQueryAccumulatesAllErrors(t *testing.T) {
	query := url.Values{}
	query.Set("page", "zero")
	query.Set("take", "many")
	query.Set("minPrice", "cheap")
	query.Set("bedrooms", "11")
	query.Set("sortBy", "color")
	query.Set("sortDirection", "sideways")
	query.Set("isAvailable", "maybe")

	_, err := parseApartmentQuery(query, testPagination)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	// Ошибка по каждому полю, а не только первая встреченная
	assert.Len(t, ve.Fields, 7)
	assert.Contains(t, ve.Fields, "page")
	assert.Contains(t, ve.Fields, "take")
	assert.Contains(t, ve.Fields, "minPrice")
	assert.Contains(t, ve.Fields, "bedrooms")
	assert.Contains(t, ve.Fields, "sortBy")
	assert.Contains(t, ve.Fields, "sortDirection")
	assert.Contains(t, ve.Fields, "isAvailable")
}

func TestParseApartmentQueryNegativePage(t *testing.T) {
	query := url.Values{}
	query.Set("page", "0")

	_, err := parseApartmentQuery(query, testPagination)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "page")
}

func TestParseApartmentQueryNegativePrice(t *testing.T) {
	query := url.Values{}
	query.Set("minPrice", "-10")

	_, err := parseApartmentQuery(query, testPagination)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "minPrice")
}
