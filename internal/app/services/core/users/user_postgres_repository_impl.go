package users

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	constraintUserEmail    = "security_users_email_key"
	constraintUserUsername = "security_users_username_key"
)

type userPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	userPostgresRepositoryInstance contracts.UserRepository
	onceUserPostgresRepository     sync.Once
)

func NewUserPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRepository {
	onceUserPostgresRepository.Do(func() {
		instance := &userPostgresRepository{
			DB:  db,
			Log: logger,
		}
		userPostgresRepositoryInstance = instance
	})
	return userPostgresRepositoryInstance
}

func (r *userPostgresRepository) FindAll(ctx context.Context, search string) ([]models.User, error) {
	return r.findMany(ctx, queries.FindUsersQuery, search)
}

func (r *userPostgresRepository) FindByRoleName(ctx context.Context, roleName string) ([]models.User, error) {
	return r.findMany(ctx, queries.FindUsersByRoleNameQuery, roleName)
}

func (r *userPostgresRepository) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	return r.findUser(ctx, queries.FindUserByIDQuery, userID)
}

func (r *userPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return r.findUser(ctx, queries.FindUserByEmailQuery, email)
}

func (r *userPostgresRepository) Create(ctx context.Context, user *models.User) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := r.DB.QueryRowContext(ctx, queries.CreateUserQuery,
		user.Username, user.Name, user.Email, user.PasswordHash, user.Status,
	).Scan(&user.ID)
	if err != nil {
		r.Log.Error("userPostgresRepository.Create error inserting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return mapUserWriteError(err, exceptions.ErrPostgresDBInsertData)
	}

	r.Log.Info("userPostgresRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, user.ID),
	)
	return nil
}

func (r *userPostgresRepository) Update(ctx context.Context, user *models.User) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, user.ID),
	)

	_, err := r.DB.ExecContext(ctx, queries.UpdateUserQuery,
		user.Username, user.Name, user.Email, user.PasswordHash, user.Status, user.ID,
	)
	if err != nil {
		r.Log.Error("userPostgresRepository.Update error updating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
			zap.Error(err),
		)
		return mapUserWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return nil
}

func (r *userPostgresRepository) UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateUserLastLoginQuery, lastLogin, userID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *userPostgresRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateUserPasswordHashQuery, passwordHash, userID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Delete cascades to the user's role assignments and audit entries; a linked
// practitioner keeps existing with its security_user_id cleared.
func (r *userPostgresRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)

	result, err := r.DB.ExecContext(ctx, queries.DeleteUserQuery, userID)
	if err != nil {
		r.Log.Error("userPostgresRepository.Delete error deleting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}

func (r *userPostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return users, nil
}

func (r *userPostgresRepository) findUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var user models.User
	err := scanUser(r.DB.QueryRowContext(ctx, query, args...), &user)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.Log.Error("userPostgresRepository.findUser error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner, user *models.User) error {
	var lastLogin sql.NullTime
	err := row.Scan(
		&user.ID, &user.Username, &user.Name, &user.Email,
		&user.PasswordHash, &user.Status, &lastLogin,
	)
	if err != nil {
		return err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return nil
}

func mapUserWriteError(err error, fallback func(error) *exceptions.CustomError) error {
	if constraint, ok := exceptions.UniqueViolationConstraint(err); ok {
		switch constraint {
		case constraintUserEmail:
			return exceptions.ErrEmailAlreadyExist(err)
		case constraintUserUsername:
			return exceptions.ErrUsernameAlreadyExist(err)
		default:
			return exceptions.ErrUniqueViolation(err)
		}
	}
	return fallback(err)
}
