package utils

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	t.Run("Valid Patient", func(t *testing.T) {
		request := &requests.CreatePatient{Name: "Juan", Gender: "M", BirthDate: "1990-02-01"}
		assert.NoError(t, ValidateStruct(request))
	})

	t.Run("Invalid Gender", func(t *testing.T) {
		request := &requests.CreatePatient{Name: "Juan", Gender: "X"}
		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "gender must be either 'M' or 'F'", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Invalid Birth Date", func(t *testing.T) {
		request := &requests.CreatePatient{Name: "Juan", Gender: "F", BirthDate: "01/02/1990"}
		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "birthDate must be a date formatted as YYYY-MM-DD", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Missing Appointment Timestamp", func(t *testing.T) {
		patientID := int64(1)
		request := &requests.RequestAppointment{PatientID: &patientID}
		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "timestamp is required", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Short New Credential", func(t *testing.T) {
		request := &requests.ChangePassword{CurrentCredential: "old", NewCredential: "abc"}
		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Equal(t, "newCredential must be at least 4 characters long", exceptions.FormatFirstValidationError(err))
	})
}
