package requests

type CreatePatient struct {
	Name      string `json:"name" validate:"required,max=150"`
	BirthDate string `json:"birthDate" validate:"omitempty,date_only"`
	Gender    string `json:"gender" validate:"required,gender"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (r *CreatePatient) ToPatch() *PatchPatient {
	return &PatchPatient{
		Name:      &r.Name,
		BirthDate: &r.BirthDate,
		Gender:    &r.Gender,
		Phone:     &r.Phone,
		Address:   &r.Address,
		Email:     &r.Email,
	}
}

type PatchPatient struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=150"`
	BirthDate *string `json:"birthDate" validate:"omitempty,date_only"`
	Gender    *string `json:"gender" validate:"omitempty,gender"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
}
