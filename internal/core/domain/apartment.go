package domain

import (
	"time"

	"github.com/google/uuid"
)

// Apartment - основная доменная сущность объявления.
// Опциональные поля хранятся как указатели: nil означает "не задано".
type Apartment struct {
	ID          uuid.UUID
	UnitName    string
	UnitNumber  string
	Project     string
	Description *string
	Price       *float64
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	Floor       *int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Images []ApartmentImage
}

// ApartmentImage - запись о загруженном изображении.
// Принадлежит ровно одной квартире, обновление/удаление не предусмотрено.
type ApartmentImage struct {
	ID           uuid.UUID
	Filename     string // сгенерированное имя файла в хранилище
	OriginalName string // имя файла при загрузке
	MimeType     string
	Size         int64
	Path         string
	ApartmentID  uuid.UUID
	CreatedAt    time.Time
}

// NewApartment - данные для создания новой квартиры (без ID и таймстемпов).
type NewApartment struct {
	UnitName    string
	UnitNumber  string
	Project     string
	Description *string
	Price       *float64
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	Floor       *int
	IsAvailable bool
}

// UploadedFile - содержимое одного файла из multipart-запроса.
type UploadedFile struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      []byte
}

// ImageFilenames возвращает имена файлов изображений в порядке сохранения.
// Всегда возвращает пустой срез, а не nil, даже если связь не была загружена.
func (a *Apartment) ImageFilenames() []string {
	filenames := make([]string, 0, len(a.Images))
	for _, img := range a.Images {
		filenames = append(filenames, img.Filename)
	}
	return filenames
}
