package models

import "time"

type ClinicalFile struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patientId"`
	FileName     string    `json:"fileName"`
	DocumentType string    `json:"documentType"`
	Description  string    `json:"description"`
	ObjectName   string    `json:"-"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	AttachedAt   time.Time `json:"attachedAt"`
	URL          string    `json:"url,omitempty"`
}
