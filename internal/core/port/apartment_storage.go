package port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

// ApartmentStoragePort - контракт хранилища записей о квартирах.
// Изоляция, блокировки и консистентность полностью делегированы хранилищу.
type ApartmentStoragePort interface {
	// Create вставляет новую запись и возвращает её с проставленными ID и таймстемпами.
	Create(ctx context.Context, apartment domain.NewApartment) (*domain.Apartment, error)

	// AddImage вставляет одну запись об изображении, привязанную к квартире.
	AddImage(ctx context.Context, image domain.ApartmentImage) error

	// FindWithFilters возвращает страницу записей (каждая с изображениями) и общее
	// количество совпадений по тому же предикату без учёта окна выборки.
	FindWithFilters(ctx context.Context, filters domain.ApartmentFilters) (*domain.PaginatedApartments, error)

	// GetByID возвращает запись с изображениями или domain.ErrApartmentNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Apartment, error)
}
