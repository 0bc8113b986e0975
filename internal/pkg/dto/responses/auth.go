package responses

import (
	"clinic-service/internal/app/models"
	"time"
)

type LoginUser struct {
	User      *UserProfile `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type UserProfile struct {
	*models.User
	Roles []string `json:"roles"`
}
