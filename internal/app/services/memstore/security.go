package memstore

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

type roleRepository struct{ s *Store }

func (s *Store) Roles() contracts.RoleRepository { return &roleRepository{s} }

func (r *roleRepository) FindAll(ctx context.Context) ([]models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		result = append(result, role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *roleRepository) FindByID(ctx context.Context, roleID int64) (*models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[roleID]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, role := range r.s.roles {
		if strings.EqualFold(strings.TrimSpace(role.Name), strings.TrimSpace(name)) {
			found := role
			return &found, nil
		}
	}
	return nil, nil
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(0, role.Name) {
		return exceptions.ErrRoleNameAlreadyExist(nil)
	}
	role.ID = r.s.nextID()
	r.s.roles[role.ID] = *role
	return nil
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(role.ID, role.Name) {
		return exceptions.ErrRoleNameAlreadyExist(nil)
	}
	r.s.roles[role.ID] = *role
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, roleID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[roleID]; !ok {
		return false, nil
	}
	delete(r.s.roles, roleID)
	for id, userRole := range r.s.userRoles {
		if userRole.RoleID == roleID {
			delete(r.s.userRoles, id)
		}
	}
	return true, nil
}

func (r *roleRepository) nameTaken(selfID int64, name string) bool {
	for id, role := range r.s.roles {
		if id != selfID && strings.EqualFold(role.Name, name) {
			return true
		}
	}
	return false
}

type userRepository struct{ s *Store }

func (s *Store) Users() contracts.UserRepository { return &userRepository{s} }

func (r *userRepository) FindAll(ctx context.Context, search string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(search)
	result := make([]models.User, 0)
	for _, user := range r.s.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(user.Username), needle) ||
			strings.Contains(strings.ToLower(user.Name), needle) ||
			strings.Contains(strings.ToLower(user.Email), needle) {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *userRepository) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByRoleName(ctx context.Context, roleName string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[int64]bool{}
	result := make([]models.User, 0)
	for _, userRole := range r.s.userRoles {
		role, ok := r.s.roles[userRole.RoleID]
		if !ok || !strings.EqualFold(strings.TrimSpace(role.Name), roleName) || seen[userRole.UserID] {
			continue
		}
		if user, ok := r.s.users[userRole.UserID]; ok {
			seen[user.ID] = true
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(0, user); err != nil {
		return err
	}
	user.ID = r.s.nextID()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(user.ID, user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user, ok := r.s.users[userID]; ok {
		user.LastLogin = &lastLogin
		r.s.users[userID] = user
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user, ok := r.s.users[userID]; ok {
		user.PasswordHash = passwordHash
		r.s.users[userID] = user
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return false, nil
	}
	delete(r.s.users, userID)
	for id, userRole := range r.s.userRoles {
		if userRole.UserID == userID {
			delete(r.s.userRoles, id)
		}
	}
	for id, practitioner := range r.s.practitioners {
		if practitioner.SecurityUserID != nil && *practitioner.SecurityUserID == userID {
			practitioner.SecurityUserID = nil
			r.s.practitioners[id] = practitioner
		}
	}
	kept := r.s.auditEntries[:0]
	for _, entry := range r.s.auditEntries {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	r.s.auditEntries = kept
	return true, nil
}

func (r *userRepository) checkUnique(selfID int64, user *models.User) error {
	for id, existing := range r.s.users {
		if id == selfID {
			continue
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return exceptions.ErrEmailAlreadyExist(nil)
		}
		if existing.Username == user.Username {
			return exceptions.ErrUsernameAlreadyExist(nil)
		}
	}
	return nil
}

type userRoleRepository struct{ s *Store }

func (s *Store) UserRoles() contracts.UserRoleRepository { return &userRoleRepository{s} }

func (r *userRoleRepository) FindAll(ctx context.Context, userID *int64) ([]models.UserRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.UserRole, 0)
	for _, userRole := range r.s.userRoles {
		if userID == nil || userRole.UserID == *userID {
			result = append(result, r.withRoleName(userRole))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *userRoleRepository) FindByID(ctx context.Context, userRoleID int64) (*models.UserRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	userRole, ok := r.s.userRoles[userRoleID]
	if !ok {
		return nil, nil
	}
	found := r.withRoleName(userRole)
	return &found, nil
}

func (r *userRoleRepository) FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := make([]string, 0)
	for _, userRole := range r.s.userRoles {
		if userRole.UserID != userID {
			continue
		}
		if role, ok := r.s.roles[userRole.RoleID]; ok {
			names = append(names, role.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *userRoleRepository) CountOtherAssignments(ctx context.Context, userID, excludeID int64, roleName string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for id, userRole := range r.s.userRoles {
		if id == excludeID || userRole.UserID != userID {
			continue
		}
		if role, ok := r.s.roles[userRole.RoleID]; ok && strings.EqualFold(strings.TrimSpace(role.Name), roleName) {
			count++
		}
	}
	return count, nil
}

func (r *userRoleRepository) Create(ctx context.Context, userRole *models.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	userRole.ID = r.s.nextID()
	*userRole = r.withRoleName(*userRole)
	r.s.userRoles[userRole.ID] = *userRole
	return nil
}

func (r *userRoleRepository) Update(ctx context.Context, userRole *models.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	*userRole = r.withRoleName(*userRole)
	r.s.userRoles[userRole.ID] = *userRole
	return nil
}

func (r *userRoleRepository) Delete(ctx context.Context, userRoleID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.userRoles[userRoleID]; !ok {
		return false, nil
	}
	delete(r.s.userRoles, userRoleID)
	return true, nil
}

func (r *userRoleRepository) withRoleName(userRole models.UserRole) models.UserRole {
	if role, ok := r.s.roles[userRole.RoleID]; ok {
		userRole.RoleName = role.Name
	}
	return userRole
}

type adminIdentityRepository struct{ s *Store }

func (s *Store) AdminIdentities() contracts.AdminIdentityRepository {
	return &adminIdentityRepository{s}
}

func (r *adminIdentityRepository) FindByID(ctx context.Context, identityID int64) (*models.AdminIdentity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	identity, ok := r.s.adminIdentities[identityID]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

func (r *adminIdentityRepository) FindByEmail(ctx context.Context, email string) (*models.AdminIdentity, error) {
	if email == "" {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *models.AdminIdentity
	for _, identity := range r.s.adminIdentities {
		if strings.EqualFold(identity.Email, email) && (found == nil || identity.ID < found.ID) {
			match := identity
			found = &match
		}
	}
	return found, nil
}

func (r *adminIdentityRepository) FindByUsername(ctx context.Context, username string) (*models.AdminIdentity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, identity := range r.s.adminIdentities {
		if identity.Username == username {
			found := identity
			return &found, nil
		}
	}
	return nil, nil
}

func (r *adminIdentityRepository) Create(ctx context.Context, identity *models.AdminIdentity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.usernameTaken(0, identity.Username) {
		return exceptions.ErrUsernameAlreadyExist(nil)
	}
	identity.ID = r.s.nextID()
	r.s.adminIdentities[identity.ID] = *identity
	return nil
}

func (r *adminIdentityRepository) Update(ctx context.Context, identity *models.AdminIdentity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.usernameTaken(identity.ID, identity.Username) {
		return exceptions.ErrUsernameAlreadyExist(nil)
	}
	r.s.adminIdentities[identity.ID] = *identity
	return nil
}

func (r *adminIdentityRepository) Delete(ctx context.Context, identityID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.adminIdentities[identityID]; !ok {
		return false, nil
	}
	delete(r.s.adminIdentities, identityID)
	for id, practitioner := range r.s.practitioners {
		if practitioner.AdminIdentityID != nil && *practitioner.AdminIdentityID == identityID {
			practitioner.AdminIdentityID = nil
			r.s.practitioners[id] = practitioner
		}
	}
	return true, nil
}

func (r *adminIdentityRepository) usernameTaken(selfID int64, username string) bool {
	for id, identity := range r.s.adminIdentities {
		if id != selfID && identity.Username == username {
			return true
		}
	}
	return false
}

// AdminIdentityCount is a test helper.
func (s *Store) AdminIdentityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.adminIdentities)
}

type auditRepository struct{ s *Store }

func (s *Store) AuditEntries() contracts.AuditRepository { return &auditRepository{s} }

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = strconv.FormatInt(r.s.nextID(), 10)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.s.auditEntries = append(r.s.auditEntries, *entry)
	return nil
}

func (r *auditRepository) FindAll(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(filter.Action)
	result := make([]models.AuditEntry, 0)
	for i := len(r.s.auditEntries) - 1; i >= 0; i-- {
		entry := r.s.auditEntries[i]
		if needle != "" && !strings.Contains(strings.ToLower(entry.Action), needle) {
			continue
		}
		if filter.UserID != nil && entry.UserID != *filter.UserID {
			continue
		}
		if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.CreatedAt.After(*filter.To) {
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
