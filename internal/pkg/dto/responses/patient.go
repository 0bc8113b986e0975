package responses

import "clinic-service/internal/app/models"

type PatientHistory struct {
	Patient      *models.Patient             `json:"patient"`
	Appointments []models.AppointmentSummary `json:"appointments"`
	Files        []models.ClinicalFile       `json:"files"`
}
