package audit

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

type auditPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	auditPostgresRepositoryInstance contracts.AuditRepository
	onceAuditPostgresRepository     sync.Once
)

func NewAuditPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AuditRepository {
	onceAuditPostgresRepository.Do(func() {
		instance := &auditPostgresRepository{
			DB:  db,
			Log: logger,
		}
		auditPostgresRepositoryInstance = instance
	})
	return auditPostgresRepositoryInstance
}

func (r *auditPostgresRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	var id int64
	err := r.DB.QueryRowContext(ctx, queries.CreateAuditEntryQuery, entry.UserID, entry.Action).Scan(&id, &entry.CreatedAt)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameUser)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	entry.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *auditPostgresRepository) FindAll(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindAuditEntriesQuery, filter.Action, filter.UserID, filter.From, filter.To)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0)
	for rows.Next() {
		var (
			id    int64
			entry models.AuditEntry
		)
		if err := rows.Scan(&id, &entry.UserID, &entry.Action, &entry.CreatedAt); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		entry.ID = strconv.FormatInt(id, 10)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return entries, nil
}
