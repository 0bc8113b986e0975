package roles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type roleUsecase struct {
	RoleRepository     contracts.RoleRepository
	UserRoleRepository contracts.UserRoleRepository
	Synchronizer       contracts.Synchronizer
	Log                *zap.Logger
}

var (
	roleUsecaseInstance contracts.RoleUsecase
	onceRoleUsecase     sync.Once
)

func NewRoleUsecase(
	roleRepository contracts.RoleRepository,
	userRoleRepository contracts.UserRoleRepository,
	synchronizer contracts.Synchronizer,
	logger *zap.Logger,
) contracts.RoleUsecase {
	onceRoleUsecase.Do(func() {
		instance := &roleUsecase{
			RoleRepository:     roleRepository,
			UserRoleRepository: userRoleRepository,
			Synchronizer:       synchronizer,
			Log:                logger,
		}
		roleUsecaseInstance = instance
	})
	return roleUsecaseInstance
}

func (uc *roleUsecase) ListRoles(ctx context.Context) ([]models.Role, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.ListRoles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.RoleRepository.FindAll(ctx)
}

func (uc *roleUsecase) GetRoleByID(ctx context.Context, roleID int64) (*models.Role, error) {
	role, err := uc.RoleRepository.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameRole)
	}
	return role, nil
}

func (uc *roleUsecase) CreateRole(ctx context.Context, request *requests.CreateRole) (*models.Role, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.CreateRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	role := &models.Role{}
	applyRolePatch(role, request.ToPatch())
	if role.Name == "" {
		return nil, exceptions.ErrFieldRequired(nil, "name")
	}

	err := uc.RoleRepository.Create(ctx, role)
	if err != nil {
		uc.Log.Error("roleUsecase.CreateRole error creating role",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("roleUsecase.CreateRole succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingRoleIDKey, role.ID),
	)
	return role, nil
}

func (uc *roleUsecase) UpdateRole(ctx context.Context, roleID int64, request *requests.PatchRole) (*models.Role, error) {
	role, err := uc.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	applyRolePatch(role, request)
	if role.Name == "" {
		return nil, exceptions.ErrFieldRequired(nil, "name")
	}

	err = uc.RoleRepository.Update(ctx, role)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (uc *roleUsecase) DeleteRole(ctx context.Context, roleID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.DeleteRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingRoleIDKey, roleID),
	)

	// Assignments cascade with the role; they keep their role name so the
	// practitioner sync can still classify them afterwards.
	assignments, err := uc.assignmentsOf(ctx, roleID)
	if err != nil {
		return err
	}

	deleted, err := uc.RoleRepository.Delete(ctx, roleID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameRole)
	}

	for i := range assignments {
		removed := &assignments[i]
		utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerForRoleRemoved", func(ctx context.Context) error {
			return uc.Synchronizer.SyncPractitionerForRoleRemoved(ctx, removed)
		})
	}

	uc.Log.Info("roleUsecase.DeleteRole succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingRoleIDKey, roleID),
		zap.Int("assignments_removed", len(assignments)),
	)
	return nil
}

func (uc *roleUsecase) assignmentsOf(ctx context.Context, roleID int64) ([]models.UserRole, error) {
	userRoles, err := uc.UserRoleRepository.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	assignments := make([]models.UserRole, 0)
	for _, userRole := range userRoles {
		if userRole.RoleID == roleID {
			assignments = append(assignments, userRole)
		}
	}
	return assignments, nil
}

func applyRolePatch(role *models.Role, patch *requests.PatchRole) {
	if patch.Name != nil {
		role.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
}
