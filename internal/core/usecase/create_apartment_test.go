package usecase

import (
	"context"
	"fmt"
	"listings-service/internal/core/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = UploadPolicy{
	MaxFileSize:    5 * 1024 * 1024,
	MaxFiles:       10,
	AllowedFormats: []string{"jpeg", "jpg", "png"},
}

// fakeStorage имитирует хранилище в памяти.
type fakeStorage struct {
	createCalls int
	images      []domain.ApartmentImage
	created     *domain.Apartment
	createErr   error
}

func (f *fakeStorage) Create(ctx context.Context, apartment domain.NewApartment) (*domain.Apartment, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &domain.Apartment{
		ID:          uuid.New(),
		UnitName:    apartment.UnitName,
		UnitNumber:  apartment.UnitNumber,
		Project:     apartment.Project,
		IsAvailable: apartment.IsAvailable,
	}
	return f.created, nil
}

func (f *fakeStorage) AddImage(ctx context.Context, image domain.ApartmentImage) error {
	f.images = append(f.images, image)
	return nil
}

func (f *fakeStorage) FindWithFilters(ctx context.Context, filters domain.ApartmentFilters) (*domain.PaginatedApartments, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Apartment, error) {
	if f.created == nil || f.created.ID != id {
		return nil, domain.ErrApartmentNotFound
	}
	result := *f.created
	result.Images = f.images
	return &result, nil
}

type fakeFileStorage struct {
	saved map[string][]byte
}

func (f *fakeFileStorage) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[filename] = content
	return filename, nil
}

type fakeEvents struct {
	published []*domain.Apartment
	err       error
}

func (f *fakeEvents) PublishApartmentCreated(ctx context.Context, apartment *domain.Apartment) error {
	f.published = append(f.published, apartment)
	return f.err
}

func validNewApartment() domain.NewApartment {
	return domain.NewApartment{
		UnitName:    "A-101",
		UnitNumber:  "101",
		Project:     "Marina Heights",
		IsAvailable: true,
	}
}

func TestCreateApartmentWithoutFiles(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewCreateApartmentUseCase(storage, &fakeFileStorage{}, nil, testPolicy)

	created, err := uc.Execute(context.Background(), validNewApartment(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, storage.createCalls)
	assert.Empty(t, storage.images)
	// Изображения всегда присутствуют как пустой список
	assert.NotNil(t, created.ImageFilenames())
	assert.Empty(t, created.ImageFilenames())
}

func TestCreateApartmentWithFiles(t *testing.T) {
	storage := &fakeStorage{}
	files := &fakeFileStorage{}
	events := &fakeEvents{}
	uc := NewCreateApartmentUseCase(storage, files, events, testPolicy)

	uploaded := []domain.UploadedFile{
		{OriginalName: "front.JPG", Size: 1024, Content: []byte("a")},
		{OriginalName: "back.png", Size: 2048, Content: []byte("b")},
	}

	created, err := uc.Execute(context.Background(), validNewApartment(), uploaded)

	require.NoError(t, err)
	require.Len(t, storage.images, 2)
	assert.Len(t, files.saved, 2)
	assert.Len(t, created.Images, 2)

	// Сохранённое имя сгенерировано заново, оригинальное остаётся в метаданных
	assert.NotEqual(t, "front.JPG", storage.images[0].Filename)
	assert.Equal(t, "front.JPG", storage.images[0].OriginalName)
	// Расширение нормализуется к нижнему регистру
	assert.Contains(t, storage.images[0].Filename, ".jpg")
	assert.Equal(t, created.ID, storage.images[0].ApartmentID)

	require.Len(t, events.published, 1)
	assert.Equal(t, created.ID, events.published[0].ID)
}

func TestCreateApartmentRejectsInvalidFormat(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewCreateApartmentUseCase(storage, &fakeFileStorage{}, nil, testPolicy)

	uploaded := []domain.UploadedFile{
		{OriginalName: "ok.jpg", Size: 10, Content: []byte("a")},
		{OriginalName: "animated.gif", Size: 10, Content: []byte("b")},
	}

	_, err := uc.Execute(context.Background(), validNewApartment(), uploaded)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "images[1]")
	// Пачка отклонена целиком: запись не создана, файлы не сохранены
	assert.Equal(t, 0, storage.createCalls)
	assert.Empty(t, storage.images)
}

func TestCreateApartmentRejectsOversizeFile(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewCreateApartmentUseCase(storage, &fakeFileStorage{}, nil, testPolicy)

	uploaded := []domain.UploadedFile{
		{OriginalName: "huge.png", Size: testPolicy.MaxFileSize + 1, Content: []byte("x")},
	}

	_, err := uc.Execute(context.Background(), validNewApartment(), uploaded)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "images[0]")
	assert.Equal(t, 0, storage.createCalls)
}

func TestCreateApartmentRejectsTooManyFiles(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewCreateApartmentUseCase(storage, &fakeFileStorage{}, nil, testPolicy)

	uploaded := make([]domain.UploadedFile, testPolicy.MaxFiles+1)
	for i := range uploaded {
		uploaded[i] = domain.UploadedFile{OriginalName: fmt.Sprintf("photo-%d.jpg", i), Size: 10}
	}

	_, err := uc.Execute(context.Background(), validNewApartment(), uploaded)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "images")
	assert.Equal(t, 0, storage.createCalls)
}

func TestCreateApartmentEventFailureDoesNotFailCreate(t *testing.T) {
	storage := &fakeStorage{}
	events := &fakeEvents{err: fmt.Errorf("broker unavailable")}
	uc := NewCreateApartmentUseCase(storage, &fakeFileStorage{}, events, testPolicy)

	created, err := uc.Execute(context.Background(), validNewApartment(), nil)

	// Публикация best-effort: сбой брокера не откатывает создание
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Len(t, events.published, 1)
}

func TestCreateApartmentStorageFailure(t *testing.T) {
	storage := &fakeStorage{createErr: fmt.Errorf("connection refused")}
	files := &fakeFileStorage{}
	uc := NewCreateApartmentUseCase(storage, files, nil, testPolicy)

	_, err := uc.Execute(context.Background(), validNewApartment(), []domain.UploadedFile{
		{OriginalName: "ok.jpg", Size: 10, Content: []byte("a")},
	})

	require.Error(t, err)
	// Файлы пишутся только после успешного создания записи
	assert.Empty(t, files.saved)
}
