package models

type AdminIdentity struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
}
