package utils

import (
	"clinic-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCreateUserRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.CreateUser{
			Username: "  ana  ",
			Name:     " Ana Perez ",
			Email:    "  ANA@CLINIC.COM  ",
			Password: " secret ",
			Status:   " Active ",
		}

		SanitizeCreateUserRequest(request)

		assert.Equal(t, "ana@clinic.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "ana", request.Username)
		assert.Equal(t, "Ana Perez", request.Name)
		assert.Equal(t, "active", request.Status)
	})

	t.Run("Credential Untouched", func(t *testing.T) {
		request := &requests.CreateUser{Password: " secret "}

		SanitizeCreateUserRequest(request)

		assert.Equal(t, " secret ", request.Password, "credentials should never be trimmed")
	})
}

func TestSanitizePatchPatientRequest(t *testing.T) {
	t.Run("Only Provided Fields", func(t *testing.T) {
		gender := " f "
		email := " JUAN@MAIL.COM "
		request := &requests.PatchPatient{Gender: &gender, Email: &email}

		SanitizePatchPatientRequest(request)

		assert.Equal(t, "F", *request.Gender)
		assert.Equal(t, "juan@mail.com", *request.Email)
		assert.Nil(t, request.Name)
		assert.Nil(t, request.Phone)
	})
}

func TestNormalizeRoleName(t *testing.T) {
	assert.Equal(t, "practitioner", NormalizeRoleName("  Practitioner "))
	assert.Equal(t, "admin", NormalizeRoleName("ADMIN"))
	assert.Equal(t, "", NormalizeRoleName("   "))
}
