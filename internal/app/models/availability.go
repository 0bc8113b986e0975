package models

import "time"

type Availability struct {
	ID             int64     `json:"id"`
	PractitionerID int64     `json:"practitionerId"`
	AvailableAt    time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}
