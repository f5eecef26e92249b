package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrApartmentNotFound = errors.New("apartment not found")
)

// ValidationError накапливает ошибки по всем полям запроса,
// а не только первую встреченную.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет ошибку для поля. Первое сообщение по полю не перезаписывается.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors сообщает, накопилась ли хотя бы одна ошибка.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil возвращает ошибку, только если она не пустая.
// Удобно в конце функции-валидатора: return filters, ve.ErrOrNil()
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError - хелпер для проверки типа ошибки на границе REST.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
