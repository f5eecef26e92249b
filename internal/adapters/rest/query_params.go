package rest

import (
	"fmt"
	"listings-service/internal/configs"
	"listings-service/internal/core/domain"
	"net/url"
	"strconv"
	"strings"
)

// Известные query-параметры листинга. Всё остальное отклоняется (strict mode),
// чтобы расхождение контракта с клиентом всплывало сразу, а не терялось молча.
var knownQueryParams = map[string]struct{}{
	"page":          {},
	"take":          {},
	"sortBy":        {},
	"sortDirection": {},
	"search":        {},
	"minPrice":      {},
	"maxPrice":      {},
	"bedrooms":      {},
	"bathrooms":     {},
	"minArea":       {},
	"maxArea":       {},
	"isAvailable":   {},
}

// parseApartmentQuery превращает сырые query-параметры в валидированную
// спецификацию фильтров. Ошибки собираются по всем полям сразу.
func parseApartmentQuery(query url.Values, defaults configs.PaginationConfig) (domain.ApartmentFilters, error) {
	ve := domain.NewValidationError()

	for key := range query {
		if _, ok := knownQueryParams[key]; !ok {
			ve.Add(key, "unknown query parameter")
		}
	}

	// Дефолты приходят из конфигурации и зажимаются так же, как пользовательский
	// ввод: окно выборки с нулевым или отрицательным размером не должно дойти
	// до хранилища ни одним путем.
	defaultPage := defaults.DefaultPage
	if defaultPage < 1 {
		defaultPage = 1
	}
	defaultTake := defaults.DefaultPageSize
	if defaultTake < domain.MinTake {
		defaultTake = domain.MinTake
	}
	if defaultTake > domain.MaxTake {
		defaultTake = domain.MaxTake
	}

	filters := domain.ApartmentFilters{
		Page:          defaultPage,
		Take:          defaultTake,
		SortBy:        domain.SortByCreatedAt,
		SortDirection: domain.SortDesc,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ve.Add("page", "must be an integer")
		case page < 1:
			ve.Add("page", "must be greater than or equal to 1")
		default:
			filters.Page = page
		}
	}

	if raw := query.Get("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add("take", "must be an integer")
		} else {
			// Размер страницы зажимается в допустимый диапазон, а не отклоняется
			if take < domain.MinTake {
				take = domain.MinTake
			}
			if take > domain.MaxTake {
				take = domain.MaxTake
			}
			filters.Take = take
		}
	}

	if raw := query.Get("sortBy"); raw != "" {
		if !domain.IsSortableField(raw) {
			ve.Add("sortBy", fmt.Sprintf("unsupported sort field: %s", raw))
		} else {
			filters.SortBy = raw
		}
	}

	if raw := query.Get("sortDirection"); raw != "" {
		switch strings.ToUpper(raw) {
		case domain.SortAsc:
			filters.SortDirection = domain.SortAsc
		case domain.SortDesc:
			filters.SortDirection = domain.SortDesc
		default:
			ve.Add("sortDirection", "must be ASC or DESC")
		}
	}

	filters.Search = query.Get("search")

	filters.MinPrice = parseOptionalFloat(query, "minPrice", ve)
	filters.MaxPrice = parseOptionalFloat(query, "maxPrice", ve)
	filters.MinArea = parseOptionalFloat(query, "minArea", ve)
	filters.MaxArea = parseOptionalFloat(query, "maxArea", ve)

	filters.Bedrooms = parseOptionalRoomsCount(query, "bedrooms", ve)
	filters.Bathrooms = parseOptionalRoomsCount(query, "bathrooms", ve)

	if raw := query.Get("isAvailable"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			ve.Add("isAvailable", "must be true or false")
		} else {
			filters.IsAvailable = &value
		}
	}

	return filters, ve.ErrOrNil()
}

// parseOptionalFloat парсит неотрицательное число. Отсутствие параметра - не ошибка,
// но неразборчивое значение присутствующего параметра - ошибка, а не молчаливый пропуск.
func parseOptionalFloat(query url.Values, key string, ve *domain.ValidationError) *float64 {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		ve.Add(key, "must be a number")
		return nil
	}
	if value < 0 {
		ve.Add(key, "must be greater than or equal to 0")
		return nil
	}
	return &value
}

// parseOptionalRoomsCount парсит количество комнат с проверкой диапазона 0-10.
func parseOptionalRoomsCount(query url.Values, key string, ve *domain.ValidationError) *int {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(key, "must be an integer")
		return nil
	}
	if value < domain.MinRoomsCount || value > domain.MaxRoomsCount {
		ve.Add(key, fmt.Sprintf("must be between %d and %d", domain.MinRoomsCount, domain.MaxRoomsCount))
		return nil
	}
	return &value
}
