package domain

// PaginatedApartments - результат постраничной выборки.
type PaginatedApartments struct {
	Apartments   []Apartment
	TotalRecords int
	CurrentPage  int
	ItemsPerPage int
}

// TotalPages считает количество страниц с округлением вверх.
// ItemsPerPage никогда не равен нулю: валидация фильтров гарантирует диапазон 1-50.
func (p *PaginatedApartments) TotalPages() int {
	return (p.TotalRecords + p.ItemsPerPage - 1) / p.ItemsPerPage
}
