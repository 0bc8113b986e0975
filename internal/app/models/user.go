package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Status       string     `json:"status"`
	LastLogin    *time.Time `json:"lastLogin"`
}

func (u *User) IsActive() bool {
	return strings.EqualFold(u.Status, "active")
}

type UserRole struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	RoleID int64 `json:"roleId"`
	// RoleName is joined from security_roles on reads.
	RoleName string `json:"roleName,omitempty"`
}
