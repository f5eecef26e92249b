package usecase

import (
	"context"
	"errors"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

type GetApartmentByIDUseCase struct {
	storage port.ApartmentStoragePort
}

func NewGetApartmentByIDUseCase(storage port.ApartmentStoragePort) *GetApartmentByIDUseCase {
	return &GetApartmentByIDUseCase{storage: storage}
}

func (uc *GetApartmentByIDUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Apartment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "GetApartmentByID",
		"apartment_id": id.String(),
	})

	ucLogger.Debug("Use case started", nil)

	apartment, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		// "не найдено" - ожидаемый исход, а не сбой хранилища
		if errors.Is(err, domain.ErrApartmentNotFound) {
			ucLogger.Debug("Apartment not found", nil)
		} else {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return apartment, nil
}
