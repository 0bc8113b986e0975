package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type AuditUsecase interface {
	Record(ctx context.Context, actorUserID int64, action string) error
	ListAuditEntries(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error)
}

// AuditRepository is implemented by the postgres and the mongo store.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	FindAll(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error)
}
