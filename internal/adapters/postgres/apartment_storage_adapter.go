package postgres

import (
	"context"
	"errors"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Колонки квартиры в порядке сканирования.
const apartmentColumns = `a.id, a.unit_name, a.unit_number, a.project, a.description,
	a.price, a.bedrooms, a.bathrooms, a.area, a.floor, a.is_available, a.created_at, a.updated_at`

type ApartmentStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewApartmentStorageAdapter(pool *pgxpool.Pool) (*ApartmentStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ApartmentStorageAdapter{
		pool: pool,
	}, nil
}

// Create вставляет новую запись о квартире. ID генерируется на стороне приложения,
// таймстемпы проставляет база.
func (a *ApartmentStorageAdapter) Create(ctx context.Context, apartment domain.NewApartment) (*domain.Apartment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ApartmentStorageAdapter",
		"method":    "Create",
	})

	created := domain.Apartment{
		ID:          uuid.New(),
		UnitName:    apartment.UnitName,
		UnitNumber:  apartment.UnitNumber,
		Project:     apartment.Project,
		Description: apartment.Description,
		Price:       apartment.Price,
		Bedrooms:    apartment.Bedrooms,
		Bathrooms:   apartment.Bathrooms,
		Area:        apartment.Area,
		Floor:       apartment.Floor,
		IsAvailable: apartment.IsAvailable,
		Images:      []domain.ApartmentImage{},
	}

	query := `
		INSERT INTO apartments (id, unit_name, unit_number, project, description,
			price, bedrooms, bathrooms, area, floor, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING created_at, updated_at
	`
	err := a.pool.QueryRow(ctx, query,
		created.ID, created.UnitName, created.UnitNumber, created.Project, created.Description,
		created.Price, created.Bedrooms, created.Bathrooms, created.Area, created.Floor, created.IsAvailable,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to insert apartment", err, nil)
		return nil, fmt.Errorf("failed to insert apartment: %w", err)
	}

	repoLogger.Debug("Apartment inserted", port.Fields{"apartment_id": created.ID.String()})
	return &created, nil
}

// AddImage вставляет запись об одном изображении.
func (a *ApartmentStorageAdapter) AddImage(ctx context.Context, image domain.ApartmentImage) error {
	query := `
		INSERT INTO apartment_images (id, filename, original_name, mime_type, size, path, apartment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`
	_, err := a.pool.Exec(ctx, query,
		image.ID, image.Filename, image.OriginalName, image.MimeType, image.Size, image.Path, image.ApartmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert apartment image: %w", err)
	}
	return nil
}

// FindWithFilters ищет квартиры по набору фильтров с пагинацией.
// COUNT и выборка страницы используют один и тот же WHERE clause с теми же
// аргументами; транзакцией запросы не связаны, кратковременная рассинхронизация
// при конкурентной записи допускается.
func (a *ApartmentStorageAdapter) FindWithFilters(ctx context.Context, filters domain.ApartmentFilters) (*domain.PaginatedApartments, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ApartmentStorageAdapter",
		"method":    "FindWithFilters",
		"page":      filters.Page,
		"take":      filters.Take,
	})

	// Получаем части запроса от билдера
	whereClause, args := applyFilters(filters)

	// Запрос для подсчета общего количества с фильтрами
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM apartments a %s", whereClause)
	var totalCount int
	if err := a.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count apartments with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count apartments with filters: %w", err)
	}

	repoLogger.Debug("Total apartments found", port.Fields{"total_count": totalCount})

	// Если ничего не найдено, нет смысла делать второй запрос
	if totalCount == 0 {
		return &domain.PaginatedApartments{
			Apartments:   []domain.Apartment{},
			TotalRecords: 0,
			CurrentPage:  filters.Page,
			ItemsPerPage: filters.Take,
		}, nil
	}

	dataQuery := fmt.Sprintf(`
		SELECT %s
		FROM apartments a
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		apartmentColumns, whereClause, orderByClause(filters), len(args)+1, len(args)+2,
	)
	pageArgs := append(args, filters.Take, filters.Skip())

	rows, err := a.pool.Query(ctx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to find apartments with filters", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to find apartments with filters: %w", err)
	}
	defer rows.Close()

	apartments := make([]domain.Apartment, 0, filters.Take)
	for rows.Next() {
		apartment, err := scanApartment(rows)
		if err != nil {
			repoLogger.Error("Failed to scan apartment row", err, nil)
			return nil, fmt.Errorf("failed to scan apartment row: %w", err)
		}
		apartments = append(apartments, *apartment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read apartment rows: %w", err)
	}

	// Подгружаем изображения одним запросом для всей страницы
	if err := a.attachImages(ctx, apartments); err != nil {
		repoLogger.Error("Failed to load apartment images", err, nil)
		return nil, err
	}

	return &domain.PaginatedApartments{
		Apartments:   apartments,
		TotalRecords: totalCount,
		CurrentPage:  filters.Page,
		ItemsPerPage: filters.Take,
	}, nil
}

// GetByID возвращает квартиру с изображениями или domain.ErrApartmentNotFound.
func (a *ApartmentStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Apartment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":    "ApartmentStorageAdapter",
		"method":       "GetByID",
		"apartment_id": id.String(),
	})

	query := fmt.Sprintf("SELECT %s FROM apartments a WHERE a.id = $1", apartmentColumns)
	row := a.pool.QueryRow(ctx, query, id)

	apartment, err := scanApartment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Apartment not found", nil)
			return nil, domain.ErrApartmentNotFound
		}
		repoLogger.Error("Failed to get apartment by id", err, nil)
		return nil, fmt.Errorf("failed to get apartment by id: %w", err)
	}

	single := []domain.Apartment{*apartment}
	if err := a.attachImages(ctx, single); err != nil {
		repoLogger.Error("Failed to load apartment images", err, nil)
		return nil, err
	}

	return &single[0], nil
}

// attachImages загружает изображения для всех квартир среза одним запросом
// и раскладывает их по владельцам. Порядок - по дате вставки.
func (a *ApartmentStorageAdapter) attachImages(ctx context.Context, apartments []domain.Apartment) error {
	if len(apartments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(apartments))
	byID := make(map[uuid.UUID]*domain.Apartment, len(apartments))
	for i := range apartments {
		// Изображения всегда инициализируем пустым срезом, а не nil
		apartments[i].Images = []domain.ApartmentImage{}
		ids = append(ids, apartments[i].ID)
		byID[apartments[i].ID] = &apartments[i]
	}

	query := `
		SELECT id, filename, original_name, mime_type, size, path, apartment_id, created_at
		FROM apartment_images
		WHERE apartment_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := a.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query apartment images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ApartmentImage
		if err := rows.Scan(
			&img.ID, &img.Filename, &img.OriginalName, &img.MimeType,
			&img.Size, &img.Path, &img.ApartmentID, &img.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan apartment image row: %w", err)
		}
		if owner, ok := byID[img.ApartmentID]; ok {
			owner.Images = append(owner.Images, img)
		}
	}
	return rows.Err()
}

// scanApartment сканирует одну строку в доменную сущность.
// Работает и для pgx.Row, и для pgx.Rows.
func scanApartment(row pgx.Row) (*domain.Apartment, error) {
	var apartment domain.Apartment
	err := row.Scan(
		&apartment.ID, &apartment.UnitName, &apartment.UnitNumber, &apartment.Project, &apartment.Description,
		&apartment.Price, &apartment.Bedrooms, &apartment.Bathrooms, &apartment.Area, &apartment.Floor,
		&apartment.IsAvailable, &apartment.CreatedAt, &apartment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}
