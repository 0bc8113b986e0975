package requests

type CreateUser struct {
	Username string `json:"username" validate:"required,max=150"`
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateUser) ToPatch() *PatchUser {
	patch := &PatchUser{
		Username: &r.Username,
		Name:     &r.Name,
		Email:    &r.Email,
		Password: &r.Password,
	}
	if r.Status != "" {
		patch.Status = &r.Status
	}
	return patch
}

type PatchUser struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=4"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type ChangePassword struct {
	CurrentCredential string `json:"currentCredential" validate:"required"`
	NewCredential     string `json:"newCredential" validate:"required,min=4"`
}
