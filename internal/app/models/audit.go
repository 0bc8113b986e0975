package models

import "time"

type AuditEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    int64     `json:"userId" bson:"userId"`
	Action    string    `json:"action" bson:"action"`
	CreatedAt time.Time `json:"timestamp" bson:"createdAt"`
}

type AuditFilter struct {
	Action string
	UserID *int64
	From   *time.Time
	To     *time.Time
}
