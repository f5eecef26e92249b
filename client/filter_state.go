package client

import (
	"context"
	"sync"
)

// FilterState - контроллер состояния фильтров. Единственный источник правды -
// сырая query-строка (аналог адресной строки браузера): каждое чтение парсит ее,
// каждая запись переписывает ее целиком и немедленно перезапрашивает данные.
type FilterState struct {
	mu       sync.Mutex
	rawQuery string
	api      *Client
}

// NewFilterState создает контроллер с состоянием по умолчанию.
func NewFilterState(api *Client) *FilterState {
	return &FilterState{
		rawQuery: DefaultFilters().Encode(),
		api:      api,
	}
}

// Query возвращает текущую query-строку.
func (s *FilterState) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawQuery
}

// Current возвращает текущие фильтры, распарсенные из query-строки.
func (s *FilterState) Current() (Filters, error) {
	return ParseQuery(s.Query())
}

// Update применяет пакет изменений к фильтрам атомарно: mutate видит
// текущее состояние целиком и меняет его за один шаг. Любое изменение,
// кроме явной смены страницы, сбрасывает номер страницы на 1.
// После записи состояния сразу выполняется перезапрос данных.
func (s *FilterState) Update(ctx context.Context, mutate func(*Filters)) (*ApartmentsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := ParseQuery(s.rawQuery)
	if err != nil {
		return nil, err
	}

	next := current
	mutate(&next)

	// Смена самих фильтров возвращает пользователя на первую страницу
	if !next.EqualExceptPage(current) {
		next.Page = DefaultPage
	}

	return s.applyLocked(ctx, next)
}

// ChangePage - явная смена страницы без сброса остальных фильтров.
func (s *FilterState) ChangePage(ctx context.Context, page int) (*ApartmentsPage, error) {
	return s.Update(ctx, func(f *Filters) {
		if page >= 1 {
			f.Page = page
		}
	})
}

// Reset возвращает фильтры в состояние по умолчанию и перезапрашивает данные.
func (s *FilterState) Reset(ctx context.Context) (*ApartmentsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, DefaultFilters())
}

// applyLocked записывает новое состояние и выполняет перезапрос.
// Вызывается только под мьютексом. При ошибке запроса состояние
// остается уже записанным: адресная строка обновилась, данные - нет.
func (s *FilterState) applyLocked(ctx context.Context, filters Filters) (*ApartmentsPage, error) {
	s.rawQuery = filters.Encode()
	return s.api.FetchApartments(ctx, filters)
}
