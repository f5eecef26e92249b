package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type CreateApartmentUseCase interface {
	Execute(ctx context.Context, apartment domain.NewApartment, files []domain.UploadedFile) (*domain.Apartment, error)
}
