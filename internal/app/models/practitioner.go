package models

type Practitioner struct {
	ID              int64  `json:"id"`
	AdminIdentityID *int64 `json:"adminIdentityId"`
	SecurityUserID  *int64 `json:"securityUserId"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	LicenseNumber   string `json:"licenseNumber"`
}
