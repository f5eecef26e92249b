package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type FindApartmentsUseCase interface {
	Execute(ctx context.Context, filters domain.ApartmentFilters) (*domain.PaginatedApartments, error)
}
