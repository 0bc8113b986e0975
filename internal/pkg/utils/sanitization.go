package utils

import (
	"clinic-service/internal/pkg/dto/requests"
	"strings"
)

func trimPointer(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}

func normalizeEmailPointer(value *string) {
	if value != nil {
		*value = NormalizeEmail(*value)
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRoleName is the comparison form of a role name.
func NormalizeRoleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func SanitizeCreatePatientRequest(input *requests.CreatePatient) {
	input.Name = strings.TrimSpace(input.Name)
	input.BirthDate = strings.TrimSpace(input.BirthDate)
	input.Gender = strings.ToUpper(strings.TrimSpace(input.Gender))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.Email = NormalizeEmail(input.Email)
}

func SanitizePatchPatientRequest(input *requests.PatchPatient) {
	trimPointer(input.Name)
	trimPointer(input.BirthDate)
	if input.Gender != nil {
		*input.Gender = strings.ToUpper(strings.TrimSpace(*input.Gender))
	}
	trimPointer(input.Phone)
	trimPointer(input.Address)
	normalizeEmailPointer(input.Email)
}

func SanitizeCreatePractitionerRequest(input *requests.CreatePractitioner) {
	input.Name = strings.TrimSpace(input.Name)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = NormalizeEmail(input.Email)
	input.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
	input.Username = strings.TrimSpace(input.Username)
}

func SanitizePatchPractitionerRequest(input *requests.PatchPractitioner) {
	trimPointer(input.Name)
	trimPointer(input.Specialty)
	trimPointer(input.Phone)
	normalizeEmailPointer(input.Email)
	trimPointer(input.LicenseNumber)
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}

func SanitizePatchAppointmentRequest(input *requests.PatchAppointment) {
	if input.Status != nil {
		*input.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}
}

func SanitizeCreateAvailabilityRequest(input *requests.CreateAvailability) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}

func SanitizePatchAvailabilityRequest(input *requests.PatchAvailability) {
	if input.Status != nil {
		*input.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}
}

func SanitizeCreateClinicalRecordRequest(input *requests.CreateClinicalRecord) {
	input.Description = strings.TrimSpace(input.Description)
	input.Diagnosis = strings.TrimSpace(input.Diagnosis)
}

func SanitizePatchClinicalRecordRequest(input *requests.PatchClinicalRecord) {
	trimPointer(input.Description)
	trimPointer(input.Diagnosis)
}

func SanitizeCreateRoleRequest(input *requests.CreateRole) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
}

func SanitizePatchRoleRequest(input *requests.PatchRole) {
	trimPointer(input.Name)
	trimPointer(input.Description)
}

// Credentials are left untouched.
func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = NormalizeEmail(input.Email)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}

func SanitizePatchUserRequest(input *requests.PatchUser) {
	trimPointer(input.Username)
	trimPointer(input.Name)
	normalizeEmailPointer(input.Email)
	if input.Status != nil {
		*input.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}
}

func SanitizeLoginRequest(input *requests.LoginUser) {
	input.Email = NormalizeEmail(input.Email)
}

func SanitizeClinicalFileText(fileName, documentType, description *string) {
	trimPointer(fileName)
	trimPointer(documentType)
	trimPointer(description)
}
