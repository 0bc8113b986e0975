package requests

import "clinic-service/internal/app/models"

type RequestAppointment struct {
	PatientID      *int64            `json:"patientId" validate:"required"`
	PractitionerID *int64            `json:"practitionerId"`
	Timestamp      *models.Timestamp `json:"timestamp" validate:"required"`
	ActingUserID   *int64            `json:"actingUserId"`
}

type CreateAppointment struct {
	PatientID      *int64            `json:"patientId" validate:"required"`
	PractitionerID *int64            `json:"practitionerId"`
	Timestamp      *models.Timestamp `json:"timestamp" validate:"required"`
	Status         string            `json:"status" validate:"omitempty,appointment_state"`
}

func (r *CreateAppointment) ToPatch() *PatchAppointment {
	patch := &PatchAppointment{
		PatientID:         r.PatientID,
		PractitionerID:    r.PractitionerID,
		ClearPractitioner: r.PractitionerID == nil,
		Timestamp:         r.Timestamp,
	}
	if r.Status != "" {
		patch.Status = &r.Status
	}
	return patch
}

type PatchAppointment struct {
	PatientID      *int64            `json:"patientId"`
	PractitionerID *int64            `json:"practitionerId"`
	Timestamp      *models.Timestamp `json:"timestamp"`
	Status         *string           `json:"status" validate:"omitempty,appointment_state"`
	// ClearPractitioner unlinks the practitioner on a full replace.
	ClearPractitioner bool `json:"-"`
}

type ListAppointments struct {
	PatientID      *int64
	PractitionerID *int64
	Status         string
}
