package userRoles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"

	"go.uber.org/zap"
)

type userRoleUsecase struct {
	UserRoleRepository contracts.UserRoleRepository
	UserRepository     contracts.UserRepository
	RoleRepository     contracts.RoleRepository
	Synchronizer       contracts.Synchronizer
	Log                *zap.Logger
}

var (
	userRoleUsecaseInstance contracts.UserRoleUsecase
	onceUserRoleUsecase     sync.Once
)

func NewUserRoleUsecase(
	userRoleRepository contracts.UserRoleRepository,
	userRepository contracts.UserRepository,
	roleRepository contracts.RoleRepository,
	synchronizer contracts.Synchronizer,
	logger *zap.Logger,
) contracts.UserRoleUsecase {
	onceUserRoleUsecase.Do(func() {
		instance := &userRoleUsecase{
			UserRoleRepository: userRoleRepository,
			UserRepository:     userRepository,
			RoleRepository:     roleRepository,
			Synchronizer:       synchronizer,
			Log:                logger,
		}
		userRoleUsecaseInstance = instance
	})
	return userRoleUsecaseInstance
}

func (uc *userRoleUsecase) ListUserRoles(ctx context.Context, userID *int64) ([]models.UserRole, error) {
	return uc.UserRoleRepository.FindAll(ctx, userID)
}

func (uc *userRoleUsecase) GetUserRoleByID(ctx context.Context, userRoleID int64) (*models.UserRole, error) {
	userRole, err := uc.UserRoleRepository.FindByID(ctx, userRoleID)
	if err != nil {
		return nil, err
	}
	if userRole == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameUserRole)
	}
	return userRole, nil
}

func (uc *userRoleUsecase) CreateUserRole(ctx context.Context, request *requests.CreateUserRole) (*models.UserRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userRoleUsecase.CreateUserRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.UserID == nil {
		return nil, exceptions.ErrFieldRequired(nil, "userId")
	}
	if request.RoleID == nil {
		return nil, exceptions.ErrFieldRequired(nil, "roleId")
	}

	userRole := &models.UserRole{UserID: *request.UserID, RoleID: *request.RoleID}
	err := uc.ensureReferencesExist(ctx, userRole)
	if err != nil {
		return nil, err
	}

	err = uc.UserRoleRepository.Create(ctx, userRole)
	if err != nil {
		return nil, err
	}

	created, err := uc.GetUserRoleByID(ctx, userRole.ID)
	if err != nil {
		return nil, err
	}

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerForRoleAssigned", func(ctx context.Context) error {
		return uc.Synchronizer.SyncPractitionerForRoleAssigned(ctx, created)
	})

	uc.Log.Info("userRoleUsecase.CreateUserRole succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserRoleIDKey, created.ID),
	)
	return created, nil
}

func (uc *userRoleUsecase) UpdateUserRole(ctx context.Context, userRoleID int64, request *requests.PatchUserRole) (*models.UserRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userRoleUsecase.UpdateUserRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserRoleIDKey, userRoleID),
	)

	before, err := uc.GetUserRoleByID(ctx, userRoleID)
	if err != nil {
		return nil, err
	}

	userRole := &models.UserRole{ID: before.ID, UserID: before.UserID, RoleID: before.RoleID}
	if request.UserID != nil {
		userRole.UserID = *request.UserID
	}
	if request.RoleID != nil {
		userRole.RoleID = *request.RoleID
	}

	err = uc.ensureReferencesExist(ctx, userRole)
	if err != nil {
		return nil, err
	}

	err = uc.UserRoleRepository.Update(ctx, userRole)
	if err != nil {
		return nil, err
	}

	after, err := uc.GetUserRoleByID(ctx, userRoleID)
	if err != nil {
		return nil, err
	}

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerForRoleChange", func(ctx context.Context) error {
		return uc.Synchronizer.SyncPractitionerForRoleChange(ctx, before, after)
	})
	return after, nil
}

func (uc *userRoleUsecase) DeleteUserRole(ctx context.Context, userRoleID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userRoleUsecase.DeleteUserRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserRoleIDKey, userRoleID),
	)

	removed, err := uc.GetUserRoleByID(ctx, userRoleID)
	if err != nil {
		return err
	}

	deleted, err := uc.UserRoleRepository.Delete(ctx, userRoleID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameUserRole)
	}

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerForRoleRemoved", func(ctx context.Context) error {
		return uc.Synchronizer.SyncPractitionerForRoleRemoved(ctx, removed)
	})
	return nil
}

func (uc *userRoleUsecase) ensureReferencesExist(ctx context.Context, userRole *models.UserRole) error {
	user, err := uc.UserRepository.FindByID(ctx, userRole.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNameUser)
	}

	role, err := uc.RoleRepository.FindByID(ctx, userRole.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNameRole)
	}
	return nil
}
