package requests

type CreateRole struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}

func (r *CreateRole) ToPatch() *PatchRole {
	return &PatchRole{Name: &r.Name, Description: &r.Description}
}

type PatchRole struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type CreateUserRole struct {
	UserID *int64 `json:"userId" validate:"required"`
	RoleID *int64 `json:"roleId" validate:"required"`
}

func (r *CreateUserRole) ToPatch() *PatchUserRole {
	return &PatchUserRole{UserID: r.UserID, RoleID: r.RoleID}
}

type PatchUserRole struct {
	UserID *int64 `json:"userId"`
	RoleID *int64 `json:"roleId"`
}
