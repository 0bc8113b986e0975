package requests

import "time"

type CreateClinicalRecord struct {
	PatientID   *int64     `json:"patientId" validate:"required"`
	AttendedAt  *time.Time `json:"attendedAt"`
	Description string     `json:"description" validate:"required"`
	Diagnosis   string     `json:"diagnosis"`
}

func (r *CreateClinicalRecord) ToPatch() *PatchClinicalRecord {
	return &PatchClinicalRecord{
		PatientID:   r.PatientID,
		AttendedAt:  r.AttendedAt,
		Description: &r.Description,
		Diagnosis:   &r.Diagnosis,
	}
}

type PatchClinicalRecord struct {
	PatientID   *int64     `json:"patientId"`
	AttendedAt  *time.Time `json:"attendedAt"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Diagnosis   *string    `json:"diagnosis"`
}
