package roles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

type rolePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	rolePostgresRepositoryInstance contracts.RoleRepository
	onceRolePostgresRepository     sync.Once
)

func NewRolePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.RoleRepository {
	onceRolePostgresRepository.Do(func() {
		instance := &rolePostgresRepository{
			DB:  db,
			Log: logger,
		}
		rolePostgresRepositoryInstance = instance
	})
	return rolePostgresRepositoryInstance
}

func (repo *rolePostgresRepository) FindAll(ctx context.Context) ([]models.Role, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.FindRolesQuery)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		err := rows.Scan(&role.ID, &role.Name, &role.Description)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return roles, nil
}

func (repo *rolePostgresRepository) FindByID(ctx context.Context, roleID int64) (*models.Role, error) {
	return repo.findOne(ctx, queries.FindRoleByIDQuery, roleID)
}

// FindByName matches trimmed names case-insensitively.
func (repo *rolePostgresRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	return repo.findOne(ctx, queries.FindRoleByNameQuery, name)
}

func (repo *rolePostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.Role, error) {
	var role models.Role
	err := repo.DB.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &role, nil
}

func (repo *rolePostgresRepository) Create(ctx context.Context, role *models.Role) error {
	err := repo.DB.QueryRowContext(ctx, queries.CreateRoleQuery, role.Name, role.Description).Scan(&role.ID)
	if err != nil {
		if _, ok := exceptions.UniqueViolationConstraint(err); ok {
			return exceptions.ErrRoleNameAlreadyExist(err)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *rolePostgresRepository) Update(ctx context.Context, role *models.Role) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateRoleQuery, role.Name, role.Description, role.ID)
	if err != nil {
		if _, ok := exceptions.UniqueViolationConstraint(err); ok {
			return exceptions.ErrRoleNameAlreadyExist(err)
		}
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Delete also removes every assignment of the role.
func (repo *rolePostgresRepository) Delete(ctx context.Context, roleID int64) (bool, error) {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteRoleQuery, roleID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
