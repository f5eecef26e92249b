package rest

import (
	"bytes"
	"listings-service/internal/core/domain"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxMemory = 10 << 20

// buildMultipartRequest собирает multipart-запрос из скалярных полей и файлов.
func buildMultipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for filename, content := range files {
		part, err := writer.CreateFormFile(imagesFormField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/apartments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseCreateFormMinimal(t *testing.T) {
	req := buildMultipartRequest(t, map[string]string{
		"unitName":   "A-101",
		"unitNumber": "101",
		"project":    "Marina Heights",
	}, nil)

	apartment, files, err := parseCreateForm(req, testMaxMemory)

	require.NoError(t, err)
	assert.Equal(t, "A-101", apartment.UnitName)
	assert.Equal(t, "101", apartment.UnitNumber)
	assert.Equal(t, "Marina Heights", apartment.Project)
	assert.Nil(t, apartment.Description)
	assert.Nil(t, apartment.Price)
	assert.True(t, apartment.IsAvailable, "availability defaults to true")
	assert.Empty(t, files)
}

func TestParseCreateFormFullSet(t *testing.T) {
	req := buildMultipartRequest(t, map[string]string{
		"unitName":    "B-202",
		"unitNumber":  "202",
		"project":     "Palm Gardens",
		"description": "Sea view",
		"price":       "150000.50",
		"bedrooms":    "2",
		"bathrooms":   "1",
		"area":        "88.5",
		"floor":       "12",
		"isAvailable": "false",
	}, map[string][]byte{
		"photo.jpg": []byte("jpeg-bytes"),
	})

	apartment, files, err := parseCreateForm(req, testMaxMemory)

	require.NoError(t, err)
	require.NotNil(t, apartment.Description)
	assert.Equal(t, "Sea view", *apartment.Description)
	require.NotNil(t, apartment.Price)
	assert.Equal(t, 150000.50, *apartment.Price)
	require.NotNil(t, apartment.Floor)
	assert.Equal(t, 12, *apartment.Floor)
	assert.False(t, apartment.IsAvailable)

	require.Len(t, files, 1)
	assert.Equal(t, "photo.jpg", files[0].OriginalName)
	assert.Equal(t, []byte("jpeg-bytes"), files[0].Content)
}

func TestParseCreateFormMissingRequiredFields(t *testing.T) {
	req := buildMultipartRequest(t, map[string]string{
		"unitName": "A-101",
	}, nil)

	_, _, err := parseCreateForm(req, testMaxMemory)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "unitNumber")
	assert.Contains(t, ve.Fields, "project")
	assert.NotContains(t, ve.Fields, "unitName")
}

func TestParseCreateFormRejectsUnknownFields(t *testing.T) {
	req := buildMultipartRequest(t, map[string]string{
		"unitName":   "A-101",
		"unitNumber": "101",
		"project":    "Marina Heights",
		"garage":     "yes",
	}, nil)

	_, _, err := parseCreateForm(req, testMaxMemory)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "garage")
}

func TestParseCreateFormRangeViolations(t *testing.T) {
	req := buildMultipartRequest(t, map[string]string{
		"unitName":   "A-101",
		"unitNumber": "101",
		"project":    "Marina Heights",
		"bedrooms":   "11",
		"floor":      "101",
		"price":      "-5",
	}, nil)

	_, _, err := parseCreateForm(req, testMaxMemory)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "bedrooms")
	assert.Contains(t, ve.Fields, "floor")
	assert.Contains(t, ve.Fields, "price")
}
