package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newListingServer поднимает сервер-заглушку, записывающий query каждого запроса.
func newListingServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ApartmentsPage{
			Data:         []ApartmentListItem{},
			TotalRecords: 0,
			Page:         1,
			Limit:        10,
			TotalPages:   0,
		})
	}))
	t.Cleanup(server.Close)

	return server, &queries
}

func TestFilterStateUpdateResetsPage(t *testing.T) {
	server, _ := newListingServer(t)
	state := NewFilterState(NewClient(server.URL))

	// Уходим на третью страницу
	_, err := state.ChangePage(context.Background(), 3)
	require.NoError(t, err)

	current, err := state.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, current.Page)

	// Любое изменение фильтров возвращает на первую страницу
	_, err = state.Update(context.Background(), func(f *Filters) {
		f.Search = "Marina"
	})
	require.NoError(t, err)

	current, err = state.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, current.Page)
	assert.Equal(t, "Marina", current.Search)
}

func TestFilterStateChangePageKeepsFilters(t *testing.T) {
	server, _ := newListingServer(t)
	state := NewFilterState(NewClient(server.URL))

	_, err := state.Update(context.Background(), func(f *Filters) {
		f.Search = "Marina"
		f.Bedrooms = intPtr(2)
	})
	require.NoError(t, err)

	_, err = state.ChangePage(context.Background(), 5)
	require.NoError(t, err)

	current, err := state.Current()
	require.NoError(t, err)
	assert.Equal(t, 5, current.Page)
	assert.Equal(t, "Marina", current.Search)
	require.NotNil(t, current.Bedrooms)
	assert.Equal(t, 2, *current.Bedrooms)
}

func TestFilterStateBatchAppliesAtomically(t *testing.T) {
	server, queries := newListingServer(t)
	state := NewFilterState(NewClient(server.URL))

	// Пакет из нескольких изменений порождает ровно один перезапрос
	_, err := state.Update(context.Background(), func(f *Filters) {
		f.MinPrice = floatPtr(1000)
		f.MaxPrice = floatPtr(2000)
		f.Bedrooms = intPtr(2)
	})
	require.NoError(t, err)

	require.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "minPrice=1000")
	assert.Contains(t, (*queries)[0], "maxPrice=2000")
	assert.Contains(t, (*queries)[0], "bedrooms=2")
}

func TestFilterStateReset(t *testing.T) {
	server, _ := newListingServer(t)
	state := NewFilterState(NewClient(server.URL))

	_, err := state.Update(context.Background(), func(f *Filters) {
		f.Search = "Marina"
		f.Page = 4
	})
	require.NoError(t, err)

	_, err = state.Reset(context.Background())
	require.NoError(t, err)

	assert.Empty(t, state.Query())
	current, err := state.Current()
	require.NoError(t, err)
	assert.Equal(t, DefaultFilters(), current)
}

func TestClientFetchApartmentsCollapsesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Validation failed"}`, http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	api := NewClient(server.URL)
	_, err := api.FetchApartments(context.Background(), DefaultFilters())
	// Не-2xx ответ возвращается как одна ошибка, без ретраев
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClientFetchApartmentDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apartments/some-id", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Trace-ID"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Apartment{
			ID:       "some-id",
			UnitName: "A-101",
			Images:   []string{"abc.jpg"},
		})
	}))
	t.Cleanup(server.Close)

	api := NewClient(server.URL)
	apartment, err := api.FetchApartment(context.Background(), "some-id")

	require.NoError(t, err)
	assert.Equal(t, "A-101", apartment.UnitName)
	assert.Equal(t, []string{"abc.jpg"}, apartment.Images)
}
