package synchronizer

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type syncFixture struct {
	store *memstore.Store
	sync  *synchronizer
	roles map[string]int64
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	store := memstore.New()
	f := &syncFixture{
		store: store,
		sync: &synchronizer{
			UserRepository:          store.Users(),
			RoleRepository:          store.Roles(),
			UserRoleRepository:      store.UserRoles(),
			PractitionerRepository:  store.Practitioners(),
			AdminIdentityRepository: store.AdminIdentities(),
			Log:                     zap.NewNop(),
		},
		roles: map[string]int64{},
	}
	for _, name := range []string{"admin", " Practitioner ", "receptionist"} {
		role := &models.Role{Name: name}
		require.NoError(t, store.Roles().Create(context.Background(), role))
		f.roles[name] = role.ID
	}
	return f
}

func (f *syncFixture) user(t *testing.T, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Name: "Name " + username, Email: email, PasswordHash: "hash-" + username, Status: "active"}
	require.NoError(t, f.store.Users().Create(context.Background(), user))
	return user
}

func (f *syncFixture) assign(t *testing.T, userID int64, role string) *models.UserRole {
	t.Helper()
	userRole := &models.UserRole{UserID: userID, RoleID: f.roles[role]}
	require.NoError(t, f.store.UserRoles().Create(context.Background(), userRole))
	return userRole
}

func (f *syncFixture) practitionerOf(t *testing.T, userID int64) *models.Practitioner {
	t.Helper()
	practitioner, err := f.store.Practitioners().FindBySecurityUserID(context.Background(), userID)
	require.NoError(t, err)
	return practitioner
}

func TestRoleAssignedCreatesPractitionerOnce(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	userRole := f.assign(t, user.ID, " Practitioner ")

	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, userRole))
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, userRole))

	practitioner := f.practitionerOf(t, user.ID)
	require.NotNil(t, practitioner)
	assert.Equal(t, "Name ana", practitioner.Name)
	assert.Equal(t, "ana@clinic.test", practitioner.Email)
	assert.Equal(t, "General", practitioner.Specialty)
	assert.Empty(t, practitioner.Phone)

	all, err := f.store.Practitioners().FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNonPractitionerRoleIsIgnored(t *testing.T) {
	f := newSyncFixture(t)
	user := f.user(t, "rec", "rec@clinic.test")
	userRole := f.assign(t, user.ID, "receptionist")

	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(context.Background(), userRole))
	assert.Nil(t, f.practitionerOf(t, user.ID))
}

func TestRoleRemovedKeepsPractitionerWhileAnotherAssignmentRemains(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	first := f.assign(t, user.ID, " Practitioner ")
	second := f.assign(t, user.ID, " Practitioner ")
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, first))

	_, err := f.store.UserRoles().Delete(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, f.sync.SyncPractitionerForRoleRemoved(ctx, first))
	assert.NotNil(t, f.practitionerOf(t, user.ID))

	_, err = f.store.UserRoles().Delete(ctx, second.ID)
	require.NoError(t, err)
	require.NoError(t, f.sync.SyncPractitionerForRoleRemoved(ctx, second))
	assert.Nil(t, f.practitionerOf(t, user.ID))
}

func TestUserRemovedDeletesUnlinkedPractitioner(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	userRole := f.assign(t, user.ID, " Practitioner ")
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, userRole))

	practitioner := f.practitionerOf(t, user.ID)
	require.NotNil(t, practitioner)
	removed, err := f.store.UserRoles().FindAll(ctx, &user.ID)
	require.NoError(t, err)

	_, err = f.store.Users().Delete(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, f.sync.SyncPractitionerForUserRemoved(ctx, practitioner, removed))
	require.NoError(t, f.sync.SyncPractitionerForUserRemoved(ctx, practitioner, removed))

	found, err := f.store.Practitioners().FindByID(ctx, practitioner.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRemovedWithoutPractitionerRoleKeepsPractitioner(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	f.assign(t, user.ID, "receptionist")
	practitioner := &models.Practitioner{SecurityUserID: &user.ID, Name: "Ana", Specialty: "General"}
	require.NoError(t, f.store.Practitioners().Create(ctx, practitioner))

	removed, err := f.store.UserRoles().FindAll(ctx, &user.ID)
	require.NoError(t, err)
	require.NoError(t, f.sync.SyncPractitionerForUserRemoved(ctx, practitioner, removed))

	found, err := f.store.Practitioners().FindByID(ctx, practitioner.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestRoleChangeAwayFromPractitioner(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	userRole := f.assign(t, user.ID, " Practitioner ")
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, userRole))

	before := *userRole
	after := *userRole
	after.RoleID = f.roles["admin"]
	require.NoError(t, f.store.UserRoles().Update(ctx, &after))

	require.NoError(t, f.sync.SyncPractitionerForRoleChange(ctx, &before, &after))
	assert.Nil(t, f.practitionerOf(t, user.ID))
}

func TestRoleMovedToAnotherUser(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	ana := f.user(t, "ana", "ana@clinic.test")
	bob := f.user(t, "bob", "bob@clinic.test")
	userRole := f.assign(t, ana.ID, " Practitioner ")
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, userRole))

	before := *userRole
	after := *userRole
	after.UserID = bob.ID
	require.NoError(t, f.store.UserRoles().Update(ctx, &after))

	require.NoError(t, f.sync.SyncPractitionerForRoleChange(ctx, &before, &after))
	assert.Nil(t, f.practitionerOf(t, ana.ID))
	assert.NotNil(t, f.practitionerOf(t, bob.ID))
}

func TestSyncPractitionerProfile(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	require.NoError(t, f.sync.SyncPractitionerForRoleAssigned(ctx, f.assign(t, user.ID, " Practitioner ")))

	user.Name = "Ana Pérez"
	user.Email = "ana.perez@clinic.test"
	require.NoError(t, f.sync.SyncPractitionerProfile(ctx, user))

	practitioner := f.practitionerOf(t, user.ID)
	assert.Equal(t, "Ana Pérez", practitioner.Name)
	assert.Equal(t, "ana.perez@clinic.test", practitioner.Email)

	loner := f.user(t, "solo", "solo@clinic.test")
	require.NoError(t, f.sync.SyncPractitionerProfile(ctx, loner))
}

func TestSyncAdminIdentityConverges(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")

	require.NoError(t, f.sync.SyncAdminIdentity(ctx, user))
	require.NoError(t, f.sync.SyncAdminIdentity(ctx, user))
	assert.Equal(t, 1, f.store.AdminIdentityCount())

	identity, err := f.store.AdminIdentities().FindByEmail(ctx, "ana@clinic.test")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "ana", identity.Username)
	assert.Equal(t, "hash-ana", identity.PasswordHash)
	assert.True(t, identity.IsActive)

	user.Status = "inactive"
	user.Name = "Ana Pérez"
	require.NoError(t, f.sync.SyncAdminIdentity(ctx, user))
	identity, err = f.store.AdminIdentities().FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.False(t, identity.IsActive)
	assert.Equal(t, "Ana Pérez", identity.FirstName)
	assert.Equal(t, 1, f.store.AdminIdentityCount())
}

func TestSyncAdminIdentityDisambiguatesUsername(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.AdminIdentities().Create(ctx, &models.AdminIdentity{Username: "ana", Email: "other@clinic.test"}))

	user := f.user(t, "", "ana@clinic.test")
	require.NoError(t, f.sync.SyncAdminIdentity(ctx, user))

	identity, err := f.store.AdminIdentities().FindByEmail(ctx, "ana@clinic.test")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, fmt.Sprintf("ana_%d", user.ID), identity.Username)

	require.NoError(t, f.sync.RemoveAdminIdentity(ctx, user))
	remaining, err := f.store.AdminIdentities().FindByEmail(ctx, "ana@clinic.test")
	require.NoError(t, err)
	assert.Nil(t, remaining)
	assert.Equal(t, 1, f.store.AdminIdentityCount(), "the unrelated identity named ana survives")
}

func TestRemoveAdminIdentityIsIdempotent(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	user := f.user(t, "ana", "ana@clinic.test")
	require.NoError(t, f.sync.SyncAdminIdentity(ctx, user))

	require.NoError(t, f.sync.RemoveAdminIdentity(ctx, user))
	require.NoError(t, f.sync.RemoveAdminIdentity(ctx, user))
	assert.Equal(t, 0, f.store.AdminIdentityCount())
}
