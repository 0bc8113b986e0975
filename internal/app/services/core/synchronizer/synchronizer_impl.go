package synchronizer

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// synchronizer keeps the security user, its practitioner record and its
// administrative identity aligned. Every method can be re-run safely.
type synchronizer struct {
	UserRepository          contracts.UserRepository
	RoleRepository          contracts.RoleRepository
	UserRoleRepository      contracts.UserRoleRepository
	PractitionerRepository  contracts.PractitionerRepository
	AdminIdentityRepository contracts.AdminIdentityRepository
	Log                     *zap.Logger
}

var (
	synchronizerInstance contracts.Synchronizer
	onceSynchronizer     sync.Once
)

func NewSynchronizer(
	userRepository contracts.UserRepository,
	roleRepository contracts.RoleRepository,
	userRoleRepository contracts.UserRoleRepository,
	practitionerRepository contracts.PractitionerRepository,
	adminIdentityRepository contracts.AdminIdentityRepository,
	logger *zap.Logger,
) contracts.Synchronizer {
	onceSynchronizer.Do(func() {
		instance := &synchronizer{
			UserRepository:          userRepository,
			RoleRepository:          roleRepository,
			UserRoleRepository:      userRoleRepository,
			PractitionerRepository:  practitionerRepository,
			AdminIdentityRepository: adminIdentityRepository,
			Log:                     logger,
		}
		synchronizerInstance = instance
	})
	return synchronizerInstance
}

// SyncPractitionerForRoleAssigned makes sure a user holding the practitioner
// role has exactly one practitioner record.
func (s *synchronizer) SyncPractitionerForRoleAssigned(ctx context.Context, userRole *models.UserRole) error {
	isPractitioner, err := s.isPractitionerRole(ctx, userRole)
	if err != nil || !isPractitioner {
		return err
	}

	user, err := s.UserRepository.FindByID(ctx, userRole.UserID)
	if err != nil || user == nil {
		return err
	}

	practitioner := &models.Practitioner{
		SecurityUserID: &user.ID,
		Name:           user.Name,
		Specialty:      constvars.PractitionerDefaultSpecialty,
		Email:          user.Email,
	}
	created, err := s.PractitionerRepository.CreateForSecurityUser(ctx, practitioner)
	if err != nil {
		return err
	}

	if created {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Info("synchronizer.SyncPractitionerForRoleAssigned created practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
			zap.Int64(constvars.LoggingPractitionerIDKey, practitioner.ID),
		)
	}
	return nil
}

// SyncPractitionerForRoleChange handles an assignment row whose role or user
// changed. Moving a practitioner assignment to another user counts as a
// removal for the old user and an assignment for the new one.
func (s *synchronizer) SyncPractitionerForRoleChange(ctx context.Context, before, after *models.UserRole) error {
	wasPractitioner, err := s.isPractitionerRole(ctx, before)
	if err != nil {
		return err
	}
	isPractitioner, err := s.isPractitionerRole(ctx, after)
	if err != nil {
		return err
	}

	userChanged := before.UserID != after.UserID
	if wasPractitioner && (!isPractitioner || userChanged) {
		err = s.removePractitionerIfUnassigned(ctx, before.UserID, after.ID)
		if err != nil {
			return err
		}
	}
	if isPractitioner && (!wasPractitioner || userChanged) {
		return s.SyncPractitionerForRoleAssigned(ctx, after)
	}
	return nil
}

func (s *synchronizer) SyncPractitionerForRoleRemoved(ctx context.Context, removed *models.UserRole) error {
	isPractitioner, err := s.isPractitionerRole(ctx, removed)
	if err != nil || !isPractitioner {
		return err
	}
	return s.removePractitionerIfUnassigned(ctx, removed.UserID, removed.ID)
}

// SyncPractitionerForUserRemoved deletes the practitioner that was linked to
// a deleted user. Both arguments are captured before the user row goes away,
// since the delete cascades to its assignments and unlinks the practitioner.
func (s *synchronizer) SyncPractitionerForUserRemoved(ctx context.Context, practitioner *models.Practitioner, removed []models.UserRole) error {
	if practitioner == nil {
		return nil
	}

	held := false
	for i := range removed {
		isPractitioner, err := s.isPractitionerRole(ctx, &removed[i])
		if err != nil {
			return err
		}
		if isPractitioner {
			held = true
			break
		}
	}
	if !held {
		return nil
	}

	deleted, err := s.PractitionerRepository.Delete(ctx, practitioner.ID)
	if err != nil {
		return err
	}
	if deleted {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Info("synchronizer removed practitioner after user removal",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingPractitionerIDKey, practitioner.ID),
		)
	}
	return nil
}

// removePractitionerIfUnassigned deletes the user's practitioner unless
// another assignment, other than excludeID, still grants the role.
func (s *synchronizer) removePractitionerIfUnassigned(ctx context.Context, userID, excludeID int64) error {
	remaining, err := s.UserRoleRepository.CountOtherAssignments(ctx, userID, excludeID, constvars.RolePractitioner)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}

	deleted, err := s.PractitionerRepository.DeleteBySecurityUserID(ctx, userID)
	if err != nil {
		return err
	}
	if deleted {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Info("synchronizer removed practitioner after role removal",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, userID),
		)
	}
	return nil
}

// SyncPractitionerProfile copies name and email onto the linked
// practitioner, writing only when something differs.
func (s *synchronizer) SyncPractitionerProfile(ctx context.Context, user *models.User) error {
	practitioner, err := s.PractitionerRepository.FindBySecurityUserID(ctx, user.ID)
	if err != nil || practitioner == nil {
		return err
	}
	if practitioner.Name == user.Name && practitioner.Email == user.Email {
		return nil
	}
	return s.PractitionerRepository.UpdateNameEmail(ctx, practitioner.ID, user.Name, user.Email)
}

// SyncAdminIdentity upserts the administrative identity matched by email,
// then by username.
func (s *synchronizer) SyncAdminIdentity(ctx context.Context, user *models.User) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	identity, err := s.findAdminIdentity(ctx, user)
	if err != nil {
		return err
	}

	if identity == nil {
		username, err := s.availableAdminUsername(ctx, user)
		if err != nil {
			return err
		}
		identity = &models.AdminIdentity{
			Username:     username,
			Email:        user.Email,
			FirstName:    user.Name,
			PasswordHash: user.PasswordHash,
			IsActive:     user.IsActive(),
		}
		err = s.AdminIdentityRepository.Create(ctx, identity)
		if err != nil {
			return err
		}
		s.Log.Info("synchronizer.SyncAdminIdentity created identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, user.ID),
			zap.Int64(constvars.LoggingIdentityIDKey, identity.ID),
		)
		return nil
	}

	if identity.Email == user.Email &&
		identity.FirstName == user.Name &&
		identity.IsActive == user.IsActive() &&
		identity.PasswordHash == user.PasswordHash {
		return nil
	}

	identity.Email = user.Email
	identity.FirstName = user.Name
	identity.IsActive = user.IsActive()
	identity.PasswordHash = user.PasswordHash
	return s.AdminIdentityRepository.Update(ctx, identity)
}

func (s *synchronizer) findAdminIdentity(ctx context.Context, user *models.User) (*models.AdminIdentity, error) {
	if user.Email != "" {
		identity, err := s.AdminIdentityRepository.FindByEmail(ctx, user.Email)
		if err != nil || identity != nil {
			return identity, err
		}
	}
	if user.Username == "" {
		return nil, nil
	}
	return s.AdminIdentityRepository.FindByUsername(ctx, user.Username)
}

func (s *synchronizer) availableAdminUsername(ctx context.Context, user *models.User) (string, error) {
	base := utils.DeriveAdminUsername(user.Username, user.Email)
	taken, err := s.AdminIdentityRepository.FindByUsername(ctx, base)
	if err != nil {
		return "", err
	}
	if taken == nil {
		return base, nil
	}
	return utils.DisambiguatedUsername(base, user.ID), nil
}

// RemoveAdminIdentity deletes every identity matching the user's email, its
// username or the disambiguated username, each at most once.
func (s *synchronizer) RemoveAdminIdentity(ctx context.Context, user *models.User) error {
	candidates := make(map[int64]struct{})

	if user.Email != "" {
		identity, err := s.AdminIdentityRepository.FindByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if identity != nil {
			candidates[identity.ID] = struct{}{}
		}
	}

	base := utils.DeriveAdminUsername(user.Username, user.Email)
	usernames := []string{user.Username, utils.DisambiguatedUsername(base, user.ID)}
	for _, username := range usernames {
		if username == "" {
			continue
		}
		identity, err := s.AdminIdentityRepository.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if identity != nil {
			candidates[identity.ID] = struct{}{}
		}
	}

	for identityID := range candidates {
		_, err := s.AdminIdentityRepository.Delete(ctx, identityID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *synchronizer) isPractitionerRole(ctx context.Context, userRole *models.UserRole) (bool, error) {
	if userRole == nil {
		return false, nil
	}
	roleName := userRole.RoleName
	if roleName == "" {
		role, err := s.RoleRepository.FindByID(ctx, userRole.RoleID)
		if err != nil || role == nil {
			return false, err
		}
		roleName = role.Name
	}
	return strings.EqualFold(strings.TrimSpace(roleName), constvars.RolePractitioner), nil
}
