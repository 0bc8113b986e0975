package models

import "time"

type ClinicalRecord struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patientId"`
	AttendedAt  time.Time `json:"attendedAt"`
	Description string    `json:"description"`
	Diagnosis   string    `json:"diagnosis"`
}
