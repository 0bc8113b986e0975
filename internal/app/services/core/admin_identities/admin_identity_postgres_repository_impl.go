package adminIdentities

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

type adminIdentityPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	adminIdentityPostgresRepositoryInstance contracts.AdminIdentityRepository
	onceAdminIdentityPostgresRepository     sync.Once
)

func NewAdminIdentityPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AdminIdentityRepository {
	onceAdminIdentityPostgresRepository.Do(func() {
		instance := &adminIdentityPostgresRepository{
			DB:  db,
			Log: logger,
		}
		adminIdentityPostgresRepositoryInstance = instance
	})
	return adminIdentityPostgresRepositoryInstance
}

func (r *adminIdentityPostgresRepository) FindByID(ctx context.Context, identityID int64) (*models.AdminIdentity, error) {
	return r.findOne(ctx, queries.FindAdminIdentityByIDQuery, identityID)
}

// FindByEmail returns the oldest identity carrying the email, matched
// case-insensitively. An empty email never matches.
func (r *adminIdentityPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.AdminIdentity, error) {
	return r.findOne(ctx, queries.FindAdminIdentityByEmailQuery, email)
}

func (r *adminIdentityPostgresRepository) FindByUsername(ctx context.Context, username string) (*models.AdminIdentity, error) {
	return r.findOne(ctx, queries.FindAdminIdentityByUsernameQuery, username)
}

func (r *adminIdentityPostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.AdminIdentity, error) {
	var identity models.AdminIdentity
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&identity.ID, &identity.Username, &identity.Email, &identity.FirstName,
		&identity.PasswordHash, &identity.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &identity, nil
}

func (r *adminIdentityPostgresRepository) Create(ctx context.Context, identity *models.AdminIdentity) error {
	err := r.DB.QueryRowContext(ctx, queries.CreateAdminIdentityQuery,
		identity.Username, identity.Email, identity.FirstName, identity.PasswordHash, identity.IsActive,
	).Scan(&identity.ID)
	if err != nil {
		if _, ok := exceptions.UniqueViolationConstraint(err); ok {
			return exceptions.ErrUsernameAlreadyExist(err)
		}
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		r.Log.Error("adminIdentityPostgresRepository.Create error inserting identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *adminIdentityPostgresRepository) Update(ctx context.Context, identity *models.AdminIdentity) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateAdminIdentityQuery,
		identity.Username, identity.Email, identity.FirstName, identity.PasswordHash, identity.IsActive, identity.ID,
	)
	if err != nil {
		if _, ok := exceptions.UniqueViolationConstraint(err); ok {
			return exceptions.ErrUsernameAlreadyExist(err)
		}
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Delete leaves linked practitioners in place; their admin_identity_id is
// set to NULL by the foreign key.
func (r *adminIdentityPostgresRepository) Delete(ctx context.Context, identityID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteAdminIdentityQuery, identityID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
