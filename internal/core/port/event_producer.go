package port

import (
	"context"
	"listings-service/internal/core/domain"
)

// ApartmentEventsPort - контракт для публикации доменных событий.
// Публикация best-effort: ошибка события не откатывает создание записи.
type ApartmentEventsPort interface {
	PublishApartmentCreated(ctx context.Context, apartment *domain.Apartment) error
}
