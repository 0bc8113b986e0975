package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

// Synchronizer keeps security users, practitioners and administrative
// identities consistent. Every method is idempotent; callers run them after
// their primary write has committed and never fail on their errors.
type Synchronizer interface {
	SyncPractitionerForRoleAssigned(ctx context.Context, userRole *models.UserRole) error
	SyncPractitionerForRoleChange(ctx context.Context, before, after *models.UserRole) error
	SyncPractitionerForRoleRemoved(ctx context.Context, removed *models.UserRole) error
	SyncPractitionerForUserRemoved(ctx context.Context, practitioner *models.Practitioner, removed []models.UserRole) error
	SyncPractitionerProfile(ctx context.Context, user *models.User) error
	SyncAdminIdentity(ctx context.Context, user *models.User) error
	RemoveAdminIdentity(ctx context.Context, user *models.User) error
}
