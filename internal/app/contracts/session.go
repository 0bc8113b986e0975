package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type SessionService interface {
	CreateSession(ctx context.Context, userID int64) (*models.Session, error)
	// ResolveToken returns nil, nil when the token does not map to a live session.
	ResolveToken(ctx context.Context, token string) (*models.Session, error)
	GenerateToken(session *models.Session) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
