package userRoles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type userRolePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	userRolePostgresRepositoryInstance contracts.UserRoleRepository
	onceUserRolePostgresRepository     sync.Once
)

func NewUserRolePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRoleRepository {
	onceUserRolePostgresRepository.Do(func() {
		instance := &userRolePostgresRepository{
			DB:  db,
			Log: logger,
		}
		userRolePostgresRepositoryInstance = instance
	})
	return userRolePostgresRepositoryInstance
}

func (r *userRolePostgresRepository) FindAll(ctx context.Context, userID *int64) ([]models.UserRole, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindUserRolesQuery, userID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	userRoles := make([]models.UserRole, 0)
	for rows.Next() {
		var model models.UserRole
		if err := rows.Scan(&model.ID, &model.UserID, &model.RoleID, &model.RoleName); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		userRoles = append(userRoles, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return userRoles, nil
}

func (r *userRolePostgresRepository) FindByID(ctx context.Context, userRoleID int64) (*models.UserRole, error) {
	var userRole models.UserRole
	err := r.DB.QueryRowContext(ctx, queries.FindUserRoleByIDQuery, userRoleID).Scan(
		&userRole.ID, &userRole.UserID, &userRole.RoleID, &userRole.RoleName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &userRole, nil
}

// FindRoleNamesByUserID backs the authorization gate; names are returned
// as stored.
func (r *userRolePostgresRepository) FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindRoleNamesByUserIDQuery, userID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return names, nil
}

func (r *userRolePostgresRepository) CountOtherAssignments(ctx context.Context, userID, excludeID int64, roleName string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, queries.CountOtherRoleAssignmentsQuery,
		userID, excludeID, strings.TrimSpace(roleName),
	).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (r *userRolePostgresRepository) Create(ctx context.Context, userRole *models.UserRole) error {
	err := r.DB.QueryRowContext(ctx, queries.CreateUserRoleQuery, userRole.UserID, userRole.RoleID).Scan(&userRole.ID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		r.Log.Error("userRolePostgresRepository.Create error inserting user role",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameUserRoleParty)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *userRolePostgresRepository) Update(ctx context.Context, userRole *models.UserRole) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateUserRoleQuery, userRole.UserID, userRole.RoleID, userRole.ID)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameUserRoleParty)
		}
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *userRolePostgresRepository) Delete(ctx context.Context, userRoleID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteUserRoleQuery, userRoleID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
