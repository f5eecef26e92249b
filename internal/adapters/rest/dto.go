package rest

import (
	"listings-service/internal/core/domain"
	"time"
)

// ApartmentResponse - полная проекция квартиры (детальная страница).
// Изображения всегда отдаются как список имён файлов, без метаданных.
type ApartmentResponse struct {
	ID          string    `json:"id"`
	UnitName    string    `json:"unitName"`
	UnitNumber  string    `json:"unitNumber"`
	Project     string    `json:"project"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Area        *float64  `json:"area"`
	Floor       *int      `json:"floor"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Images      []string  `json:"images"`
}

// ApartmentListResponse - урезанная проекция для списочной выдачи:
// без описания и таймстемпов, ради меньшего размера ответа.
type ApartmentListResponse struct {
	ID          string   `json:"id"`
	UnitName    string   `json:"unitName"`
	UnitNumber  string   `json:"unitNumber"`
	Project     string   `json:"project"`
	Price       *float64 `json:"price"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
	Floor       *int     `json:"floor"`
	IsAvailable bool     `json:"isAvailable"`
	Images      []string `json:"images"`
}

// PaginatedApartmentsResponse - конверт постраничной выдачи.
type PaginatedApartmentsResponse struct {
	Data         []ApartmentListResponse `json:"data"`
	TotalRecords int                     `json:"totalRecords"`
	Page         int                     `json:"page"`
	Limit        int                     `json:"limit"`
	TotalPages   int                     `json:"totalPages"`
}

// mapToApartmentResponse - чистый маппинг домена в детальную проекцию.
func mapToApartmentResponse(apartment *domain.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:          apartment.ID.String(),
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
		CreatedAt:   apartment.CreatedAt,
		UpdatedAt:   apartment.UpdatedAt,
		Images:      apartment.ImageFilenames(),
	}
}

// mapToApartmentListResponse - чистый маппинг домена в списочную проекцию.
func mapToApartmentListResponse(apartment *domain.Apartment) ApartmentListResponse {
	return ApartmentListResponse{
		ID:          apartment.ID.String(),
		UnitName:    apartment.UnitName,
		UnitNumber:  apartment.UnitNumber,
		Project:     apartment.Project,
		Price:       apartment.Price,
		Bedrooms:    apartment.Bedrooms,
		Bathrooms:   apartment.Bathrooms,
		Area:        apartment.Area,
		Floor:       apartment.Floor,
		IsAvailable: apartment.IsAvailable,
		Images:      apartment.ImageFilenames(),
	}
}
