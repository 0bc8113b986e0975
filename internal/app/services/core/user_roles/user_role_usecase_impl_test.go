package userRoles

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSynchronizer struct {
	mock.Mock
}

func (m *MockSynchronizer) SyncPractitionerForRoleAssigned(ctx context.Context, userRole *models.UserRole) error {
	return m.Called(ctx, userRole).Error(0)
}

func (m *MockSynchronizer) SyncPractitionerForRoleChange(ctx context.Context, before, after *models.UserRole) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockSynchronizer) SyncPractitionerForRoleRemoved(ctx context.Context, removed *models.UserRole) error {
	return m.Called(ctx, removed).Error(0)
}

func (m *MockSynchronizer) SyncPractitionerForUserRemoved(ctx context.Context, practitioner *models.Practitioner, removed []models.UserRole) error {
	return m.Called(ctx, practitioner, removed).Error(0)
}

func (m *MockSynchronizer) SyncPractitionerProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockSynchronizer) SyncAdminIdentity(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockSynchronizer) RemoveAdminIdentity(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

type userRoleFixture struct {
	store   *memstore.Store
	sync    *MockSynchronizer
	usecase *userRoleUsecase
	userID  int64
	roles   map[string]int64
}

func newUserRoleFixture(t *testing.T) *userRoleFixture {
	t.Helper()
	store := memstore.New()
	synchronizer := new(MockSynchronizer)
	ctx := context.Background()

	user := &models.User{Username: "ana", Name: "Ana", Email: "ana@clinic.test", Status: "active"}
	require.NoError(t, store.Users().Create(ctx, user))

	roles := map[string]int64{}
	for _, name := range []string{"practitioner", "admin"} {
		role := &models.Role{Name: name}
		require.NoError(t, store.Roles().Create(ctx, role))
		roles[name] = role.ID
	}

	return &userRoleFixture{
		store: store,
		sync:  synchronizer,
		usecase: &userRoleUsecase{
			UserRoleRepository: store.UserRoles(),
			UserRepository:     store.Users(),
			RoleRepository:     store.Roles(),
			Synchronizer:       synchronizer,
			Log:                zap.NewNop(),
		},
		userID: user.ID,
		roles:  roles,
	}
}

func TestCreateUserRoleRunsSync(t *testing.T) {
	f := newUserRoleFixture(t)
	roleID := f.roles["practitioner"]
	f.sync.On("SyncPractitionerForRoleAssigned", mock.Anything, mock.MatchedBy(func(userRole *models.UserRole) bool {
		return userRole.RoleName == "practitioner" && userRole.UserID == f.userID
	})).Return(nil).Once()

	created, err := f.usecase.CreateUserRole(context.Background(), &requests.CreateUserRole{UserID: &f.userID, RoleID: &roleID})
	require.NoError(t, err)
	assert.Equal(t, "practitioner", created.RoleName)
	f.sync.AssertExpectations(t)
}

func TestCreateUserRoleUnknownReferences(t *testing.T) {
	f := newUserRoleFixture(t)
	missing := int64(999)
	roleID := f.roles["admin"]

	_, err := f.usecase.CreateUserRole(context.Background(), &requests.CreateUserRole{UserID: &missing, RoleID: &roleID})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.usecase.CreateUserRole(context.Background(), &requests.CreateUserRole{UserID: &f.userID, RoleID: &missing})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	f.sync.AssertNotCalled(t, "SyncPractitionerForRoleAssigned", mock.Anything, mock.Anything)
}

func TestUpdateUserRolePassesBeforeAndAfter(t *testing.T) {
	f := newUserRoleFixture(t)
	ctx := context.Background()
	practitionerRole := f.roles["practitioner"]
	adminRole := f.roles["admin"]
	f.sync.On("SyncPractitionerForRoleAssigned", mock.Anything, mock.Anything).Return(errors.New("ignored"))
	f.sync.On("SyncPractitionerForRoleChange", mock.Anything,
		mock.MatchedBy(func(before *models.UserRole) bool { return before.RoleName == "practitioner" }),
		mock.MatchedBy(func(after *models.UserRole) bool { return after.RoleName == "admin" }),
	).Return(nil).Once()

	created, err := f.usecase.CreateUserRole(ctx, &requests.CreateUserRole{UserID: &f.userID, RoleID: &practitionerRole})
	require.NoError(t, err, "sync failures never fail the write")

	updated, err := f.usecase.UpdateUserRole(ctx, created.ID, &requests.PatchUserRole{RoleID: &adminRole})
	require.NoError(t, err)
	assert.Equal(t, adminRole, updated.RoleID)
	f.sync.AssertExpectations(t)
}

func TestDeleteUserRole(t *testing.T) {
	f := newUserRoleFixture(t)
	ctx := context.Background()
	roleID := f.roles["practitioner"]
	f.sync.On("SyncPractitionerForRoleAssigned", mock.Anything, mock.Anything).Return(nil)
	f.sync.On("SyncPractitionerForRoleRemoved", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := f.usecase.CreateUserRole(ctx, &requests.CreateUserRole{UserID: &f.userID, RoleID: &roleID})
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeleteUserRole(ctx, created.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(f.usecase.DeleteUserRole(ctx, created.ID)))
	f.sync.AssertExpectations(t)
}
