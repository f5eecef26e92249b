// Package client - программный аналог фронтенда листинга: состояние фильтров,
// сериализация их в query-строку и HTTP-клиент к REST API сервиса.
package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Допустимые значения сортировки. Совпадают с белым списком сервера.
const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByArea      = "area"
	SortByBedrooms  = "bedrooms"
	SortByBathrooms = "bathrooms"

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

const (
	DefaultPage = 1
	DefaultTake = 10
	MinTake     = 1
	MaxTake     = 50
)

// Filters - спецификация фильтров глазами клиента.
// nil-указатель означает "без ограничения"; пустая строка поиска - тоже.
type Filters struct {
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	Bedrooms    *int
	Bathrooms   *int
	MinArea     *float64
	MaxArea     *float64
	IsAvailable *bool

	SortBy        string
	SortDirection string

	Page int
	Take int
}

// DefaultFilters возвращает фильтры в исходном состоянии листинга.
func DefaultFilters() Filters {
	return Filters{
		SortBy:        SortByCreatedAt,
		SortDirection: SortDesc,
		Page:          DefaultPage,
		Take:          DefaultTake,
	}
}

// Values сериализует фильтры в query-параметры. Эмитятся только поля
// с заданным, непустым, отличным от умолчания значением: отсутствие
// параметра означает "без ограничения", а не "пустое ограничение".
func (f Filters) Values() url.Values {
	values := url.Values{}

	if f.Search != "" {
		values.Set("search", f.Search)
	}
	setOptionalFloat(values, "minPrice", f.MinPrice)
	setOptionalFloat(values, "maxPrice", f.MaxPrice)
	setOptionalInt(values, "bedrooms", f.Bedrooms)
	setOptionalInt(values, "bathrooms", f.Bathrooms)
	setOptionalFloat(values, "minArea", f.MinArea)
	setOptionalFloat(values, "maxArea", f.MaxArea)
	if f.IsAvailable != nil {
		values.Set("isAvailable", strconv.FormatBool(*f.IsAvailable))
	}

	if f.SortBy != "" && f.SortBy != SortByCreatedAt {
		values.Set("sortBy", f.SortBy)
	}
	if f.SortDirection != "" && !strings.EqualFold(f.SortDirection, SortDesc) {
		values.Set("sortDirection", strings.ToUpper(f.SortDirection))
	}

	if f.Page > DefaultPage {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if f.Take != 0 && f.Take != DefaultTake {
		values.Set("take", strconv.Itoa(f.Take))
	}

	return values
}

// Encode возвращает каноническую query-строку фильтров.
func (f Filters) Encode() string {
	return f.Values().Encode()
}

// ParseValues - обратная операция к Values: восстанавливает фильтры из
// query-параметров, подставляя умолчания для отсутствующих полей.
func ParseValues(values url.Values) (Filters, error) {
	filters := DefaultFilters()

	filters.Search = values.Get("search")

	var err error
	if filters.MinPrice, err = getOptionalFloat(values, "minPrice"); err != nil {
		return Filters{}, err
	}
	if filters.MaxPrice, err = getOptionalFloat(values, "maxPrice"); err != nil {
		return Filters{}, err
	}
	if filters.MinArea, err = getOptionalFloat(values, "minArea"); err != nil {
		return Filters{}, err
	}
	if filters.MaxArea, err = getOptionalFloat(values, "maxArea"); err != nil {
		return Filters{}, err
	}
	if filters.Bedrooms, err = getOptionalInt(values, "bedrooms"); err != nil {
		return Filters{}, err
	}
	if filters.Bathrooms, err = getOptionalInt(values, "bathrooms"); err != nil {
		return Filters{}, err
	}

	if raw := values.Get("isAvailable"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("client: invalid isAvailable value %q", raw)
		}
		filters.IsAvailable = &available
	}

	if raw := values.Get("sortBy"); raw != "" {
		switch raw {
		case SortByCreatedAt, SortByPrice, SortByArea, SortByBedrooms, SortByBathrooms:
			filters.SortBy = raw
		default:
			return Filters{}, fmt.Errorf("client: unsupported sort field %q", raw)
		}
	}
	if raw := values.Get("sortDirection"); raw != "" {
		switch strings.ToUpper(raw) {
		case SortAsc:
			filters.SortDirection = SortAsc
		case SortDesc:
			filters.SortDirection = SortDesc
		default:
			return Filters{}, fmt.Errorf("client: invalid sort direction %q", raw)
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Filters{}, fmt.Errorf("client: invalid page value %q", raw)
		}
		filters.Page = page
	}
	if raw := values.Get("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("client: invalid take value %q", raw)
		}
		// Клиент зажимает размер страницы так же, как это сделает сервер
		if take < MinTake {
			take = MinTake
		}
		if take > MaxTake {
			take = MaxTake
		}
		filters.Take = take
	}

	return filters, nil
}

// ParseQuery восстанавливает фильтры из сырой query-строки.
func ParseQuery(rawQuery string) (Filters, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Filters{}, fmt.Errorf("client: malformed query string: %w", err)
	}
	return ParseValues(values)
}

// EqualExceptPage сравнивает все поля фильтров, кроме номера страницы.
// Используется, чтобы отличить смену страницы от смены самих фильтров.
func (f Filters) EqualExceptPage(other Filters) bool {
	a, b := f, other
	a.Page, b.Page = 0, 0
	return a.Encode() == b.Encode()
}

func setOptionalFloat(values url.Values, key string, value *float64) {
	if value != nil {
		values.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

func setOptionalInt(values url.Values, key string, value *int) {
	if value != nil {
		values.Set(key, strconv.Itoa(*value))
	}
}

func getOptionalFloat(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("client: invalid %s value %q", key, raw)
	}
	return &value, nil
}

func getOptionalInt(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("client: invalid %s value %q", key, raw)
	}
	return &value, nil
}
