package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
	"time"
)

type UserUsecase interface {
	ListUsers(ctx context.Context, query *requests.ListQuery) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	CreateUser(ctx context.Context, request *requests.CreateUser, actingUserID *int64) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, request *requests.PatchUser, actingUserID *int64) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64, actingUserID *int64) error
	ListReceptionists(ctx context.Context) ([]models.User, error)
	CreateReceptionist(ctx context.Context, request *requests.CreateUser, actingUserID *int64) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, request *requests.ChangePassword, actingUserID *int64) error
}

type UserRepository interface {
	FindAll(ctx context.Context, search string) ([]models.User, error)
	FindByID(ctx context.Context, userID int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRoleName(ctx context.Context, roleName string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, userID int64) (deleted bool, err error)
}
