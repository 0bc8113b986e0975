package auth

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository     contracts.UserRepository
	UserRoleRepository contracts.UserRoleRepository
	SessionService     contracts.SessionService
	AuditUsecase       contracts.AuditUsecase
	Log                *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	userRoleRepository contracts.UserRoleRepository,
	sessionService contracts.SessionService,
	auditUsecase contracts.AuditUsecase,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		instance := &authUsecase{
			UserRepository:     userRepository,
			UserRoleRepository: userRoleRepository,
			SessionService:     sessionService,
			AuditUsecase:       auditUsecase,
			Log:                logger,
		}
		authUsecaseInstance = instance
	})
	return authUsecaseInstance
}

// Login never tells the caller which check failed.
func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, utils.NormalizeEmail(request.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.LogSecurityEvent(uc.Log, "login_unknown_email", requestID, "low")
		return nil, exceptions.ErrInvalidCredentials(nil)
	}

	if !utils.CheckPasswordHash(request.Credential, user.PasswordHash) {
		utils.LogSecurityEvent(uc.Log, "login_wrong_credential", requestID, "medium",
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
		)
		return nil, exceptions.ErrInvalidCredentials(nil)
	}

	if !user.IsActive() {
		utils.LogSecurityEvent(uc.Log, "login_inactive_account", requestID, "medium",
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
		)
		return nil, exceptions.ErrInvalidCredentials(nil)
	}

	session, err := uc.SessionService.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := uc.SessionService.GenerateToken(session)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	utils.BestEffort(ctx, uc.Log, "userRepository.UpdateLastLogin", func(ctx context.Context) error {
		return uc.UserRepository.UpdateLastLogin(ctx, user.ID, now)
	})
	user.LastLogin = &now

	utils.BestEffort(ctx, uc.Log, "auditUsecase.Record", func(ctx context.Context) error {
		return uc.AuditUsecase.Record(ctx, user.ID, constvars.AuditActionLogin)
	})

	profile, err := uc.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.LoginUser{
		User:      profile,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout is safe to call without a session.
func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if session == nil {
		return nil
	}

	err := uc.SessionService.DeleteSession(ctx, session.SessionID)

	// The attempt is audited even when the session store failed.
	if session.UserID != 0 {
		utils.BestEffort(ctx, uc.Log, "auditUsecase.Record", func(ctx context.Context) error {
			return uc.AuditUsecase.Record(ctx, session.UserID, constvars.AuditActionLogout)
		})
	}

	if err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.SessionID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *authUsecase) Me(ctx context.Context, session *models.Session) (*responses.UserProfile, error) {
	if session == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}
	return uc.buildProfile(ctx, user)
}

func (uc *authUsecase) buildProfile(ctx context.Context, user *models.User) (*responses.UserProfile, error) {
	roles, err := uc.UserRoleRepository.FindRoleNamesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &responses.UserProfile{User: user, Roles: roles}, nil
}
