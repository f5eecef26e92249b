package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetApartmentByIDUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Apartment, error)
}
