package usecase

import (
	"context"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadPolicy - ограничения на загрузку файлов, снятые с конфигурации при старте.
type UploadPolicy struct {
	MaxFileSize    int64
	MaxFiles       int
	AllowedFormats []string
}

type CreateApartmentUseCase struct {
	storage port.ApartmentStoragePort
	files   port.FileStoragePort
	events  port.ApartmentEventsPort // nil, если публикация событий выключена
	policy  UploadPolicy
}

func NewCreateApartmentUseCase(storage port.ApartmentStoragePort, files port.FileStoragePort,
	events port.ApartmentEventsPort, policy UploadPolicy) *CreateApartmentUseCase {
	return &CreateApartmentUseCase{
		storage: storage,
		files:   files,
		events:  events,
		policy:  policy,
	}
}

// Execute создает квартиру вместе с изображениями.
// Валидация всей пачки файлов выполняется ДО вставки записи: при любом
// невалидном файле пачка отклоняется целиком и запись не создается.
func (uc *CreateApartmentUseCase) Execute(ctx context.Context, apartment domain.NewApartment, files []domain.UploadedFile) (*domain.Apartment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateApartment",
		"files_count": len(files),
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.validateFiles(files); err != nil {
		ucLogger.Warn("Upload batch rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	created, err := uc.storage.Create(ctx, apartment)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	// Сохраняем файлы последовательно: сначала на диск, затем запись в базе.
	// Шаги не связаны транзакцией; при сбое между ними остаётся файл-сирота,
	// а не запись без файла.
	for _, file := range files {
		image := domain.ApartmentImage{
			ID:           uuid.New(),
			Filename:     uuid.New().String() + strings.ToLower(filepath.Ext(file.OriginalName)),
			OriginalName: file.OriginalName,
			MimeType:     file.MimeType,
			Size:         file.Size,
			ApartmentID:  created.ID,
		}

		path, err := uc.files.Save(ctx, image.Filename, file.Content)
		if err != nil {
			ucLogger.Error("Failed to save uploaded file", err, port.Fields{"original_name": file.OriginalName})
			return nil, fmt.Errorf("failed to save uploaded file %q: %w", file.OriginalName, err)
		}
		image.Path = path

		if err := uc.storage.AddImage(ctx, image); err != nil {
			ucLogger.Error("Failed to persist image record", err, port.Fields{"filename": image.Filename})
			return nil, err
		}
	}

	// Перечитываем запись, чтобы вернуть её вместе с сохранёнными изображениями
	if len(files) > 0 {
		created, err = uc.storage.GetByID(ctx, created.ID)
		if err != nil {
			ucLogger.Error("Failed to re-read created apartment", err, nil)
			return nil, err
		}
	}

	// Публикация события best-effort: запись уже создана, откатывать нечего
	if uc.events != nil {
		if err := uc.events.PublishApartmentCreated(ctx, created); err != nil {
			ucLogger.Warn("Failed to publish apartment.created event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"apartment_id": created.ID.String(),
		"images_saved": len(created.Images),
	})

	return created, nil
}

// validateFiles проверяет всю пачку файлов и собирает ошибки по каждому файлу.
func (uc *CreateApartmentUseCase) validateFiles(files []domain.UploadedFile) error {
	ve := domain.NewValidationError()

	if uc.policy.MaxFiles > 0 && len(files) > uc.policy.MaxFiles {
		ve.Add("images", fmt.Sprintf("too many files: %d, max %d", len(files), uc.policy.MaxFiles))
	}

	for i, file := range files {
		field := fmt.Sprintf("images[%d]", i)

		format := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.OriginalName), "."))
		if !uc.isAllowedFormat(format) {
			ve.Add(field, fmt.Sprintf("invalid image format: %s", file.OriginalName))
			continue
		}

		if uc.policy.MaxFileSize > 0 && file.Size > uc.policy.MaxFileSize {
			ve.Add(field, fmt.Sprintf("file too large: %s", file.OriginalName))
		}
	}

	return ve.ErrOrNil()
}

func (uc *CreateApartmentUseCase) isAllowedFormat(format string) bool {
	if format == "" {
		return false
	}
	for _, allowed := range uc.policy.AllowedFormats {
		if format == allowed {
			return true
		}
	}
	return false
}
