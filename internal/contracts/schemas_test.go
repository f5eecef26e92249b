package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateApartmentCreated(t *testing.T) {
	valid := []byte(`{
		"id": "3b3e1cfd-3c32-4a4a-9d6a-6f0a2cf3a111",
		"unitName": "A-101",
		"unitNumber": "101",
		"project": "Marina Heights",
		"price": 150000.5,
		"bedrooms": 2,
		"bathrooms": null,
		"area": 88.5,
		"floor": 12,
		"isAvailable": true,
		"images": ["abc.jpg"],
		"createdAt": "2026-08-31T10:00:00Z"
	}`)

	assert.NoError(t, Validate("ApartmentCreated", valid))
}

func TestValidateApartmentCreatedMissingRequired(t *testing.T) {
	missing := []byte(`{"unitName": "A-101"}`)
	assert.Error(t, Validate("ApartmentCreated", missing))
}

func TestValidateApartmentCreatedRejectsExtraFields(t *testing.T) {
	extra := []byte(`{
		"id": "3b3e1cfd-3c32-4a4a-9d6a-6f0a2cf3a111",
		"unitName": "A-101",
		"unitNumber": "101",
		"project": "Marina Heights",
		"isAvailable": true,
		"createdAt": "2026-08-31T10:00:00Z",
		"color": "blue"
	}`)
	assert.Error(t, Validate("ApartmentCreated", extra))
}

func TestValidateApartmentCreatedRangeViolation(t *testing.T) {
	outOfRange := []byte(`{
		"id": "3b3e1cfd-3c32-4a4a-9d6a-6f0a2cf3a111",
		"unitName": "A-101",
		"unitNumber": "101",
		"project": "Marina Heights",
		"bedrooms": 11,
		"isAvailable": true,
		"createdAt": "2026-08-31T10:00:00Z"
	}`)
	assert.Error(t, Validate("ApartmentCreated", outOfRange))
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("NoSuchSchema", []byte(`{}`))
	require.Error(t, err)
}
