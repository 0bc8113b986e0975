package requests

type LoginUser struct {
	Email      string `json:"email" validate:"required,email"`
	Credential string `json:"credential" validate:"required"`
}

type AuthorizeUser struct {
	Resource       string
	RequiredAction string
}
