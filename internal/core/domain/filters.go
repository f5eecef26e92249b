package domain

// Допустимые значения сортировки. Любое другое поле отклоняется на этапе валидации,
// чтобы имя колонки никогда не попадало в SQL из пользовательского ввода.
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
	MinTake = 1
	MaxTake = 50

	MinRoomsCount = 0
	MaxRoomsCount = 10
	MinFloor      = 0
	MaxFloor      = 100
)

// ApartmentFilters - валидированная спецификация фильтров для одного запроса.
// nil-указатель означает отсутствие ограничения (открытый предикат),
// а не "равно null".
type ApartmentFilters struct {
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

// Skip возвращает смещение окна выборки.
func (f ApartmentFilters) Skip() int {
	return (f.Page - 1) * f.Take
}

// IsSortableField проверяет, входит ли поле в белый список сортировки.
func IsSortableField(field string) bool {
	switch field {
	case SortByCreatedAt, SortByPrice, SortByArea, SortByBedrooms, SortByBathrooms:
		return true
	}
	return false
}
