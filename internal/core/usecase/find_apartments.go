package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

type FindApartmentsUseCase struct {
	storage port.ApartmentStoragePort
}

func NewFindApartmentsUseCase(storage port.ApartmentStoragePort) *FindApartmentsUseCase {
	return &FindApartmentsUseCase{storage: storage}
}

func (uc *FindApartmentsUseCase) Execute(ctx context.Context, filters domain.ApartmentFilters) (*domain.PaginatedApartments, error) {
	// Получаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindApartments",
		"page":     filters.Page,
		"take":     filters.Take,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.FindWithFilters(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err // Просто пробрасываем ошибку дальше
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalRecords,
		"items_on_page": len(result.Apartments),
	})

	return result, nil
}
