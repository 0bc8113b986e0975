package requests

type CreatePractitioner struct {
	Name          string `json:"name" validate:"required,max=150"`
	Specialty     string `json:"specialty" validate:"max=100"`
	Phone         string `json:"phone" validate:"max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	LicenseNumber string `json:"licenseNumber" validate:"max=50"`
	// Username and Password create a linked administrative identity.
	Username string `json:"username" validate:"omitempty,max=150"`
	Password string `json:"password" validate:"required_with=Username,omitempty,min=4"`
}

func (r *CreatePractitioner) ToPatch() *PatchPractitioner {
	return &PatchPractitioner{
		Name:          &r.Name,
		Specialty:     &r.Specialty,
		Phone:         &r.Phone,
		Email:         &r.Email,
		LicenseNumber: &r.LicenseNumber,
	}
}

type PatchPractitioner struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=150"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=100"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=50"`
}
