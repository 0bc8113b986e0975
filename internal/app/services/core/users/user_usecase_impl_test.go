package users

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/synchronizer"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
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

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Record(ctx context.Context, actorUserID int64, action string) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) ListAuditEntries(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	return nil, nil
}

type userFixture struct {
	store   *memstore.Store
	sync    *MockSynchronizer
	audit   *recordingAudit
	usecase *userUsecase
}

func newUserFixture() *userFixture {
	store := memstore.New()
	synchronizer := new(MockSynchronizer)
	audit := &recordingAudit{}
	return &userFixture{
		store: store,
		sync:  synchronizer,
		audit: audit,
		usecase: &userUsecase{
			UserRepository:         store.Users(),
			RoleRepository:         store.Roles(),
			UserRoleRepository:     store.UserRoles(),
			PractitionerRepository: store.Practitioners(),
			Synchronizer:           synchronizer,
			AuditUsecase:           audit,
			Log:                    zap.NewNop(),
		},
	}
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func newUserRequest(username string) *requests.CreateUser {
	return &requests.CreateUser{
		Username: username,
		Name:     "Name " + username,
		Email:    username + "@clinic.test",
		Password: "s3cret",
	}
}

func TestCreateUserHashesAndSyncs(t *testing.T) {
	f := newUserFixture()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()
	actor := int64(1)

	user, err := f.usecase.CreateUser(context.Background(), newUserRequest("ana"), &actor)
	require.NoError(t, err)

	assert.Equal(t, "active", user.Status)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("s3cret", user.PasswordHash))
	assert.Len(t, f.audit.actions, 1)
	f.sync.AssertExpectations(t)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newUserFixture()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := f.usecase.CreateUser(ctx, newUserRequest("ana"), nil)
	require.NoError(t, err)

	duplicate := newUserRequest("ana2")
	duplicate.Email = "ANA@clinic.test"
	_, err = f.usecase.CreateUser(ctx, duplicate, nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestUpdateUserSyncFailureIsSwallowed(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(errors.New("identity store down"))
	f.sync.On("SyncPractitionerProfile", mock.Anything, mock.Anything).Return(errors.New("practitioners down"))

	created, err := f.usecase.CreateUser(ctx, newUserRequest("ana"), nil)
	require.NoError(t, err)

	name := "Ana Pérez"
	updated, err := f.usecase.UpdateUser(ctx, created.ID, &requests.PatchUser{Name: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	stored, err := f.usecase.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
	f.sync.AssertCalled(t, "SyncPractitionerProfile", mock.Anything, mock.Anything)
}

func TestDeleteUserRemovesIdentity(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(nil)
	f.sync.On("RemoveAdminIdentity", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
		return user.Username == "ana"
	})).Return(nil).Once()

	created, err := f.usecase.CreateUser(ctx, newUserRequest("ana"), nil)
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeleteUser(ctx, created.ID, nil))
	assert.Equal(t, http.StatusNotFound, statusOf(f.usecase.DeleteUser(ctx, created.ID, nil)))
	f.sync.AssertExpectations(t)
}

func TestDeleteUserRemovesLinkedPractitioner(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	log := zap.NewNop()
	entitySynchronizer := synchronizer.NewSynchronizer(
		store.Users(), store.Roles(), store.UserRoles(), store.Practitioners(), store.AdminIdentities(), log,
	)
	uc := &userUsecase{
		UserRepository:         store.Users(),
		RoleRepository:         store.Roles(),
		UserRoleRepository:     store.UserRoles(),
		PractitionerRepository: store.Practitioners(),
		Synchronizer:           entitySynchronizer,
		AuditUsecase:           &recordingAudit{},
		Log:                    log,
	}

	role := &models.Role{Name: constvars.RolePractitioner}
	require.NoError(t, store.Roles().Create(ctx, role))
	dentist, err := uc.CreateUser(ctx, newUserRequest("dentist"), nil)
	require.NoError(t, err)
	userRole := &models.UserRole{UserID: dentist.ID, RoleID: role.ID}
	require.NoError(t, store.UserRoles().Create(ctx, userRole))
	require.NoError(t, entitySynchronizer.SyncPractitionerForRoleAssigned(ctx, userRole))

	practitioner, err := store.Practitioners().FindBySecurityUserID(ctx, dentist.ID)
	require.NoError(t, err)
	require.NotNil(t, practitioner)

	require.NoError(t, uc.DeleteUser(ctx, dentist.ID, nil))

	remaining, err := store.Practitioners().FindAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, remaining, "no practitioner is left without its security user")
}

func TestDeleteUserKeepsUnlinkedPractitioners(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(nil)
	f.sync.On("RemoveAdminIdentity", mock.Anything, mock.Anything).Return(nil)

	created, err := f.usecase.CreateUser(ctx, newUserRequest("ana"), nil)
	require.NoError(t, err)
	require.NoError(t, f.store.Practitioners().Create(ctx, &models.Practitioner{Name: "Walk-in", Specialty: "General"}))

	require.NoError(t, f.usecase.DeleteUser(ctx, created.ID, nil))

	remaining, err := f.store.Practitioners().FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	f.sync.AssertNotCalled(t, "SyncPractitionerForUserRemoved", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReceptionistCreatesRoleOnce(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(nil)

	first, err := f.usecase.CreateReceptionist(ctx, newUserRequest("rec1"), nil)
	require.NoError(t, err)
	_, err = f.usecase.CreateReceptionist(ctx, newUserRequest("rec2"), nil)
	require.NoError(t, err)
	_, err = f.usecase.CreateUser(ctx, newUserRequest("other"), nil)
	require.NoError(t, err)

	roles, err := f.store.Roles().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	receptionists, err := f.usecase.ListReceptionists(ctx)
	require.NoError(t, err)
	require.Len(t, receptionists, 2)
	assert.Equal(t, first.ID, receptionists[0].ID)
}

func TestChangePassword(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.sync.On("SyncAdminIdentity", mock.Anything, mock.Anything).Return(nil)

	user, err := f.usecase.CreateUser(ctx, newUserRequest("ana"), nil)
	require.NoError(t, err)

	err = f.usecase.ChangePassword(ctx, user.ID, &requests.ChangePassword{
		CurrentCredential: "wrong",
		NewCredential:     "n3w-secret",
	}, &user.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	stored, err := f.usecase.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("s3cret", stored.PasswordHash))

	err = f.usecase.ChangePassword(ctx, user.ID, &requests.ChangePassword{
		CurrentCredential: "s3cret",
		NewCredential:     "n3w-secret",
	}, &user.ID)
	require.NoError(t, err)

	stored, err = f.usecase.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("n3w-secret", stored.PasswordHash))
	assert.Len(t, f.audit.actions, 1)
}
