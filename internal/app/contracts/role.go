package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type RoleUsecase interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRoleByID(ctx context.Context, roleID int64) (*models.Role, error)
	CreateRole(ctx context.Context, request *requests.CreateRole) (*models.Role, error)
	UpdateRole(ctx context.Context, roleID int64, request *requests.PatchRole) (*models.Role, error)
	DeleteRole(ctx context.Context, roleID int64) error
}

type RoleRepository interface {
	FindAll(ctx context.Context) ([]models.Role, error)
	FindByID(ctx context.Context, roleID int64) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, roleID int64) (deleted bool, err error)
}
