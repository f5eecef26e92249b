package rest

import (
	"errors"
	"listings-service/internal/configs"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ApartmentsHandler struct {
	createUC  usecases_port.CreateApartmentUseCase
	findUC    usecases_port.FindApartmentsUseCase
	getByIDUC usecases_port.GetApartmentByIDUseCase

	pagination      configs.PaginationConfig
	maxUploadMemory int64
}

func NewApartmentsHandler(createUC usecases_port.CreateApartmentUseCase,
	findUC usecases_port.FindApartmentsUseCase,
	getByIDUC usecases_port.GetApartmentByIDUseCase,
	pagination configs.PaginationConfig,
	maxUploadMemory int64) *ApartmentsHandler {
	return &ApartmentsHandler{
		createUC:        createUC,
		findUC:          findUC,
		getByIDUC:       getByIDUC,
		pagination:      pagination,
		maxUploadMemory: maxUploadMemory,
	}
}

// Create обрабатывает POST /api/v1/apartments (multipart-форма с файлами)
func (h *ApartmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Create"})

	// Тело запроса ограничено бюджетом на всю пачку файлов ещё до чтения
	// формы: слишком большая загрузка обрывается, а не буферизуется целиком
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMemory)

	apartment, files, err := parseCreateForm(r, h.maxUploadMemory)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			logger.Warn("Create request failed validation", port.Fields{"fields": ve.Fields})
			WriteValidationError(w, ve)
			return
		}
		logger.Error("Failed to parse create form", err, nil)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"unit_name":   apartment.UnitName,
		"project":     apartment.Project,
		"files_count": len(files),
	})
	handlerLogger.Info("Processing request to create apartment", nil)

	created, err := h.createUC.Execute(r.Context(), apartment, files)
	if err != nil {
		// Валидация файлов живёт в use case, поэтому проверяем тип и здесь
		if ve, ok := domain.AsValidationError(err); ok {
			handlerLogger.Warn("Upload batch failed validation", port.Fields{"fields": ve.Fields})
			WriteValidationError(w, ve)
			return
		}
		handlerLogger.Error("Create apartment use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create apartment")
		return
	}

	handlerLogger.Info("Successfully created apartment", port.Fields{"apartment_id": created.ID.String()})
	RespondWithJSON(w, http.StatusCreated, mapToApartmentResponse(created))
}

// FindApartments обрабатывает GET /api/v1/apartments
func (h *ApartmentsHandler) FindApartments(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindApartments"})

	// --- Шаг 1: Парсим и валидируем query-параметры ---
	filters, err := parseApartmentQuery(r.URL.Query(), h.pagination)
	if err != nil {
		ve, _ := domain.AsValidationError(err)
		logger.Warn("Query failed validation", port.Fields{"fields": ve.Fields})
		WriteValidationError(w, ve)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"page": filters.Page,
		"take": filters.Take,
	})
	handlerLogger.Debug("Processing request to find apartments", nil)

	// --- Шаг 2: Вызываем use-case ---
	paginatedResult, err := h.findUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve apartments")
		return
	}

	// --- Шаг 3: Маппим результат в DTO для ответа ---
	response := PaginatedApartmentsResponse{
		Data:         make([]ApartmentListResponse, len(paginatedResult.Apartments)),
		TotalRecords: paginatedResult.TotalRecords,
		Page:         paginatedResult.CurrentPage,
		Limit:        paginatedResult.ItemsPerPage,
		TotalPages:   paginatedResult.TotalPages(),
	}
	for i := range paginatedResult.Apartments {
		response.Data[i] = mapToApartmentListResponse(&paginatedResult.Apartments[i])
	}

	handlerLogger.Info("Successfully found apartments", port.Fields{
		"total_found":   paginatedResult.TotalRecords,
		"items_on_page": len(paginatedResult.Apartments),
	})

	RespondWithJSON(w, http.StatusOK, response)
}

// GetApartmentByID обрабатывает GET /api/v1/apartments/{apartmentID}
func (h *ApartmentsHandler) GetApartmentByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetApartmentByID"})

	apartmentIDStr := chi.URLParam(r, "apartmentID")
	apartmentID, err := uuid.Parse(apartmentIDStr)
	if err != nil {
		logger.Warn("Invalid apartment ID format", port.Fields{"provided_id": apartmentIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid apartment ID format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"apartment_id": apartmentIDStr})
	handlerLogger.Debug("Processing request to get apartment details", nil)

	apartment, err := h.getByIDUC.Execute(r.Context(), apartmentID)
	if err != nil {
		if errors.Is(err, domain.ErrApartmentNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Apartment not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve apartment")
		return
	}

	handlerLogger.Info("Successfully found apartment details", nil)
	RespondWithJSON(w, http.StatusOK, mapToApartmentResponse(apartment))
}
