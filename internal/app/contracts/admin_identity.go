package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type AdminIdentityRepository interface {
	FindByID(ctx context.Context, identityID int64) (*models.AdminIdentity, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminIdentity, error)
	FindByUsername(ctx context.Context, username string) (*models.AdminIdentity, error)
	Create(ctx context.Context, identity *models.AdminIdentity) error
	Update(ctx context.Context, identity *models.AdminIdentity) error
	Delete(ctx context.Context, identityID int64) (deleted bool, err error)
}
