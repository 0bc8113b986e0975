package requests

import "clinic-service/internal/app/models"

type CreateAvailability struct {
	PractitionerID *int64            `json:"practitionerId" validate:"required"`
	Timestamp      *models.Timestamp `json:"timestamp" validate:"required"`
	Status         string            `json:"status" validate:"omitempty,oneof=available busy"`
}

func (r *CreateAvailability) ToPatch() *PatchAvailability {
	patch := &PatchAvailability{
		PractitionerID: r.PractitionerID,
		Timestamp:      r.Timestamp,
	}
	if r.Status != "" {
		patch.Status = &r.Status
	}
	return patch
}

type PatchAvailability struct {
	PractitionerID *int64            `json:"practitionerId"`
	Timestamp      *models.Timestamp `json:"timestamp"`
	Status         *string           `json:"status" validate:"omitempty,oneof=available busy"`
}

type ListAvailabilities struct {
	PractitionerID *int64
	Status         string
}
