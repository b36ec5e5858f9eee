package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	valid := map[string]interface{}{
		"username": "ana",
		"password": "secret",
		"email":    "ana@example.com",
	}
	assert.NoError(t, ValidateRegister(valid))
}

func TestValidateRegister_MissingRequiredField(t *testing.T) {
	err := ValidateRegister(map[string]interface{}{
		"username": "ana",
		"password": "secret",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestValidateRegister_RejectsUnknownFields(t *testing.T) {
	err := ValidateRegister(map[string]interface{}{
		"username": "ana",
		"password": "secret",
		"email":    "ana@example.com",
		"is_admin": true,
	})
	assert.Error(t, err)
}

func TestValidateRegister_RoleEnum(t *testing.T) {
	payload := map[string]interface{}{
		"username": "ana",
		"password": "secret",
		"email":    "ana@example.com",
		"role":     "superuser",
	}
	assert.Error(t, ValidateRegister(payload))

	payload["role"] = "admin"
	assert.NoError(t, ValidateRegister(payload))
}

func TestValidateCita(t *testing.T) {
	valid := map[string]interface{}{
		"store_id": float64(3), // JSON numbers decode as float64
		"date":     "2025-07-01",
		"time":     "09:30",
		"user_ids": []interface{}{float64(7), float64(9)},
	}
	assert.NoError(t, ValidateCita(valid))
}

func TestValidateCita_DateFormat(t *testing.T) {
	err := ValidateCita(map[string]interface{}{
		"store_id": float64(3),
		"date":     "July 1st",
		"time":     "09:30",
	})
	assert.Error(t, err)
}

func TestValidateCita_TimeAcceptsSeconds(t *testing.T) {
	assert.NoError(t, ValidateCita(map[string]interface{}{
		"store_id": float64(3),
		"date":     "2025-07-01",
		"time":     "09:30:00",
	}))
}
