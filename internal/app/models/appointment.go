package models

import "time"

type Appointment struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patientId"`
	PractitionerID *int64    `json:"practitionerId"`
	ScheduledAt    time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

// AppointmentSummary is the row shape used by the patient history view.
type AppointmentSummary struct {
	ID               int64     `json:"id"`
	ScheduledAt      time.Time `json:"timestamp"`
	Status           string    `json:"status"`
	PractitionerName *string   `json:"practitionerName"`
}
