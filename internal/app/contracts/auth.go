package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, session *models.Session) error
	Me(ctx context.Context, session *models.Session) (*responses.UserProfile, error)
}

// Authorizer is the role authorization gate.
type Authorizer interface {
	Authorize(ctx context.Context, session *models.Session, resource, action string) (models.Decision, error)
}
