package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type UserRoleUsecase interface {
	ListUserRoles(ctx context.Context, userID *int64) ([]models.UserRole, error)
	GetUserRoleByID(ctx context.Context, userRoleID int64) (*models.UserRole, error)
	CreateUserRole(ctx context.Context, request *requests.CreateUserRole) (*models.UserRole, error)
	UpdateUserRole(ctx context.Context, userRoleID int64, request *requests.PatchUserRole) (*models.UserRole, error)
	DeleteUserRole(ctx context.Context, userRoleID int64) error
}

type UserRoleRepository interface {
	FindAll(ctx context.Context, userID *int64) ([]models.UserRole, error)
	FindByID(ctx context.Context, userRoleID int64) (*models.UserRole, error)
	FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error)
	// CountOtherAssignments counts the user's assignments of roleName,
	// ignoring the row excludeID.
	CountOtherAssignments(ctx context.Context, userID, excludeID int64, roleName string) (int, error)
	Create(ctx context.Context, userRole *models.UserRole) error
	Update(ctx context.Context, userRole *models.UserRole) error
	Delete(ctx context.Context, userRoleID int64) (deleted bool, err error)
}
