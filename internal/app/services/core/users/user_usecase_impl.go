package users

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository     contracts.UserRepository
	RoleRepository     contracts.RoleRepository
	UserRoleRepository     contracts.UserRoleRepository
	PractitionerRepository contracts.PractitionerRepository
	Synchronizer           contracts.Synchronizer
	AuditUsecase           contracts.AuditUsecase
	Log                    *zap.Logger
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userRepository contracts.UserRepository,
	roleRepository contracts.RoleRepository,
	userRoleRepository contracts.UserRoleRepository,
	practitionerRepository contracts.PractitionerRepository,
	synchronizer contracts.Synchronizer,
	auditUsecase contracts.AuditUsecase,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		instance := &userUsecase{
			UserRepository:     userRepository,
			RoleRepository:     roleRepository,
			UserRoleRepository:     userRoleRepository,
			PractitionerRepository: practitionerRepository,
			Synchronizer:           synchronizer,
			AuditUsecase:           auditUsecase,
			Log:                    logger,
		}
		userUsecaseInstance = instance
	})
	return userUsecaseInstance
}

func (uc *userUsecase) ListUsers(ctx context.Context, query *requests.ListQuery) ([]models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.ListUsers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.UserRepository.FindAll(ctx, query.Search)
}

func (uc *userUsecase) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameUser)
	}
	return user, nil
}

func (uc *userUsecase) CreateUser(ctx context.Context, request *requests.CreateUser, actingUserID *int64) (*models.User, error) {
	user, err := uc.createUser(ctx, request)
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, actingUserID, fmt.Sprintf(constvars.AuditActionUserCreated, user.ID))
	return user, nil
}

func (uc *userUsecase) createUser(ctx context.Context, request *requests.CreateUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.createUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user := &models.User{Status: constvars.UserStatusActive}
	err := applyUserPatch(user, request.ToPatch())
	if err != nil {
		return nil, err
	}

	err = uc.UserRepository.Create(ctx, user)
	if err != nil {
		uc.Log.Error("userUsecase.createUser error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncAdminIdentity", func(ctx context.Context) error {
		return uc.Synchronizer.SyncAdminIdentity(ctx, user)
	})

	uc.Log.Info("userUsecase.createUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, user.ID),
	)
	return user, nil
}

func (uc *userUsecase) UpdateUser(ctx context.Context, userID int64, request *requests.PatchUser, actingUserID *int64) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = applyUserPatch(user, request)
	if err != nil {
		return nil, err
	}

	err = uc.UserRepository.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerProfile", func(ctx context.Context) error {
		return uc.Synchronizer.SyncPractitionerProfile(ctx, user)
	})
	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncAdminIdentity", func(ctx context.Context) error {
		return uc.Synchronizer.SyncAdminIdentity(ctx, user)
	})
	uc.audit(ctx, actingUserID, fmt.Sprintf(constvars.AuditActionUserUpdated, user.ID))

	return user, nil
}

func (uc *userUsecase) DeleteUser(ctx context.Context, userID int64, actingUserID *int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.DeleteUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	// The delete cascades to the assignments and unlinks the practitioner,
	// so both are read first.
	assignments, err := uc.UserRoleRepository.FindAll(ctx, &userID)
	if err != nil {
		return err
	}
	practitioner, err := uc.PractitionerRepository.FindBySecurityUserID(ctx, userID)
	if err != nil {
		return err
	}

	deleted, err := uc.UserRepository.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameUser)
	}

	if practitioner != nil {
		utils.BestEffort(ctx, uc.Log, "synchronizer.SyncPractitionerForUserRemoved", func(ctx context.Context) error {
			return uc.Synchronizer.SyncPractitionerForUserRemoved(ctx, practitioner, assignments)
		})
	}
	utils.BestEffort(ctx, uc.Log, "synchronizer.RemoveAdminIdentity", func(ctx context.Context) error {
		return uc.Synchronizer.RemoveAdminIdentity(ctx, user)
	})
	uc.audit(ctx, actingUserID, fmt.Sprintf(constvars.AuditActionUserDeleted, user.ID))

	uc.Log.Info("userUsecase.DeleteUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)
	return nil
}

func (uc *userUsecase) ListReceptionists(ctx context.Context) ([]models.User, error) {
	return uc.UserRepository.FindByRoleName(ctx, constvars.RoleReceptionist)
}

// CreateReceptionist creates the user and assigns the receptionist role,
// creating the role on first use. The user is removed again when the
// assignment cannot be written.
func (uc *userUsecase) CreateReceptionist(ctx context.Context, request *requests.CreateUser, actingUserID *int64) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	role, err := uc.receptionistRole(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uc.createUser(ctx, request)
	if err != nil {
		return nil, err
	}

	err = uc.UserRoleRepository.Create(ctx, &models.UserRole{UserID: user.ID, RoleID: role.ID})
	if err != nil {
		uc.Log.Error("userUsecase.CreateReceptionist error assigning role",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
			zap.Error(err),
		)
		utils.BestEffort(ctx, uc.Log, "userUsecase.CreateReceptionist rollback user", func(ctx context.Context) error {
			_, err := uc.UserRepository.Delete(ctx, user.ID)
			if err != nil {
				return err
			}
			return uc.Synchronizer.RemoveAdminIdentity(ctx, user)
		})
		return nil, err
	}

	uc.audit(ctx, actingUserID, fmt.Sprintf(constvars.AuditActionReceptionistCreated, user.ID))
	return user, nil
}

func (uc *userUsecase) receptionistRole(ctx context.Context) (*models.Role, error) {
	role, err := uc.RoleRepository.FindByName(ctx, constvars.RoleReceptionist)
	if err != nil || role != nil {
		return role, err
	}

	role = &models.Role{Name: constvars.RoleReceptionist}
	err = uc.RoleRepository.Create(ctx, role)
	if err == nil {
		return role, nil
	}

	// lost a race with a concurrent create
	existing, findErr := uc.RoleRepository.FindByName(ctx, constvars.RoleReceptionist)
	if findErr == nil && existing != nil {
		return existing, nil
	}
	return nil, err
}

// ChangePassword requires the current credential; a mismatch leaves the
// stored hash untouched.
func (uc *userUsecase) ChangePassword(ctx context.Context, userID int64, request *requests.ChangePassword, actingUserID *int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.ChangePassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(request.CurrentCredential, user.PasswordHash) {
		utils.LogSecurityEvent(uc.Log, "password_change_rejected", requestID, "medium",
			zap.Int64(constvars.LoggingUserIDKey, userID),
		)
		return exceptions.ErrCurrentCredentialIncorrect(nil)
	}

	passwordHash, err := utils.HashPassword(request.NewCredential)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}

	err = uc.UserRepository.UpdatePasswordHash(ctx, userID, passwordHash)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash

	utils.BestEffort(ctx, uc.Log, "synchronizer.SyncAdminIdentity", func(ctx context.Context) error {
		return uc.Synchronizer.SyncAdminIdentity(ctx, user)
	})
	uc.audit(ctx, actingUserID, fmt.Sprintf(constvars.AuditActionPasswordChanged, userID))
	return nil
}

func (uc *userUsecase) audit(ctx context.Context, actingUserID *int64, action string) {
	if actingUserID == nil {
		return
	}
	utils.BestEffort(ctx, uc.Log, "auditUsecase.Record", func(ctx context.Context) error {
		return uc.AuditUsecase.Record(ctx, *actingUserID, action)
	})
}

func applyUserPatch(user *models.User, patch *requests.PatchUser) error {
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if patch.Password != nil && *patch.Password != "" {
		passwordHash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return exceptions.ErrHashPassword(err)
		}
		user.PasswordHash = passwordHash
	}
	return nil
}
