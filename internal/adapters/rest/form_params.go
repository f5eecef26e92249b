package rest

import (
	"fmt"
	"io"
	"listings-service/internal/core/domain"
	"net/http"
	"strconv"
)

// Поле multipart-формы, под которым приходят файлы изображений.
const imagesFormField = "images"

// Известные скалярные поля формы создания. Неизвестные поля отклоняются,
// как и в query-параметрах листинга.
var knownFormFields = map[string]struct{}{
	"unitName":    {},
	"unitNumber":  {},
	"project":     {},
	"description": {},
	"price":       {},
	"bedrooms":    {},
	"bathrooms":   {},
	"area":        {},
	"floor":       {},
	"isAvailable": {},
}

// parseCreateForm разбирает multipart-форму создания квартиры:
// скалярные поля с коэрцией и проверкой диапазонов плюс содержимое файлов.
func parseCreateForm(r *http.Request, maxMemory int64) (domain.NewApartment, []domain.UploadedFile, error) {
	var apartment domain.NewApartment

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		ve := domain.NewValidationError()
		ve.Add("body", "invalid multipart form")
		return apartment, nil, ve
	}

	ve := domain.NewValidationError()

	for key := range r.MultipartForm.Value {
		if _, ok := knownFormFields[key]; !ok {
			ve.Add(key, "unknown form field")
		}
	}
	for key := range r.MultipartForm.File {
		if key != imagesFormField {
			ve.Add(key, "unknown file field")
		}
	}

	apartment.UnitName = requiredFormString(r, "unitName", ve)
	apartment.UnitNumber = requiredFormString(r, "unitNumber", ve)
	apartment.Project = requiredFormString(r, "project", ve)

	if raw := r.FormValue("description"); raw != "" {
		apartment.Description = &raw
	}

	apartment.Price = optionalFormFloat(r, "price", ve)
	apartment.Area = optionalFormFloat(r, "area", ve)
	apartment.Bedrooms = optionalFormInt(r, "bedrooms", domain.MinRoomsCount, domain.MaxRoomsCount, ve)
	apartment.Bathrooms = optionalFormInt(r, "bathrooms", domain.MinRoomsCount, domain.MaxRoomsCount, ve)
	apartment.Floor = optionalFormInt(r, "floor", domain.MinFloor, domain.MaxFloor, ve)

	// По умолчанию новая квартира считается доступной
	apartment.IsAvailable = true
	if raw := r.FormValue("isAvailable"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			ve.Add("isAvailable", "must be true or false")
		} else {
			apartment.IsAvailable = value
		}
	}

	files, err := readUploadedFiles(r)
	if err != nil {
		return apartment, nil, err
	}

	if err := ve.ErrOrNil(); err != nil {
		return apartment, nil, err
	}
	return apartment, files, nil
}

// readUploadedFiles вычитывает содержимое всех файлов из формы.
// Валидация формата и размера происходит дальше, в use case.
func readUploadedFiles(r *http.Request) ([]domain.UploadedFile, error) {
	headers := r.MultipartForm.File[imagesFormField]
	files := make([]domain.UploadedFile, 0, len(headers))

	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", header.Filename, err)
		}

		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %q: %w", header.Filename, err)
		}

		files = append(files, domain.UploadedFile{
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         header.Size,
			Content:      content,
		})
	}

	return files, nil
}

func requiredFormString(r *http.Request, key string, ve *domain.ValidationError) string {
	value := r.FormValue(key)
	if value == "" {
		ve.Add(key, "is required")
	}
	return value
}

func optionalFormFloat(r *http.Request, key string, ve *domain.ValidationError) *float64 {
	raw := r.FormValue(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		ve.Add(key, "must be a number")
		return nil
	}
	if value < 0 {
		ve.Add(key, "must be greater than or equal to 0")
		return nil
	}
	return &value
}

func optionalFormInt(r *http.Request, key string, min, max int, ve *domain.ValidationError) *int {
	raw := r.FormValue(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(key, "must be an integer")
		return nil
	}
	if value < min || value > max {
		ve.Add(key, fmt.Sprintf("must be between %d and %d", min, max))
		return nil
	}
	return &value
}
