package roles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/synchronizer"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
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

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

type MockSynchronizer struct {
	mock.Mock
	contracts.Synchronizer
}

func (m *MockSynchronizer) SyncPractitionerForRoleRemoved(ctx context.Context, removed *models.UserRole) error {
	return m.Called(ctx, removed).Error(0)
}

func newRoleUsecase(store *memstore.Store) *roleUsecase {
	return &roleUsecase{
		RoleRepository:     store.Roles(),
		UserRoleRepository: store.UserRoles(),
		Synchronizer:       new(MockSynchronizer),
		Log:                zap.NewNop(),
	}
}

func TestRoleLifecycle(t *testing.T) {
	store := memstore.New()
	uc := newRoleUsecase(store)
	ctx := context.Background()

	created, err := uc.CreateRole(ctx, &requests.CreateRole{Name: " hygienist ", Description: "Cleanings"})
	require.NoError(t, err)
	assert.Equal(t, "hygienist", created.Name)

	_, err = uc.CreateRole(ctx, &requests.CreateRole{Name: "Hygienist"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err), "role names are unique regardless of case")

	description := "Cleanings and x-rays"
	updated, err := uc.UpdateRole(ctx, created.ID, &requests.PatchRole{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "hygienist", updated.Name)
	assert.Equal(t, description, updated.Description)

	roles, err := uc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	require.NoError(t, uc.DeleteRole(ctx, created.ID))
	_, err = uc.GetRoleByID(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, http.StatusNotFound, statusOf(uc.DeleteRole(ctx, created.ID)))
}

func TestCreateRoleRequiresName(t *testing.T) {
	store := memstore.New()
	uc := newRoleUsecase(store)

	_, err := uc.CreateRole(context.Background(), &requests.CreateRole{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestDeleteRoleSyncsEveryAssignment(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	synchronizer := new(MockSynchronizer)
	uc := &roleUsecase{
		RoleRepository:     store.Roles(),
		UserRoleRepository: store.UserRoles(),
		Synchronizer:       synchronizer,
		Log:                zap.NewNop(),
	}

	hygienist := &models.Role{Name: "hygienist"}
	other := &models.Role{Name: "receptionist"}
	require.NoError(t, store.Roles().Create(ctx, hygienist))
	require.NoError(t, store.Roles().Create(ctx, other))
	for _, userRole := range []*models.UserRole{
		{UserID: 1, RoleID: hygienist.ID},
		{UserID: 2, RoleID: hygienist.ID},
		{UserID: 1, RoleID: other.ID},
	} {
		require.NoError(t, store.UserRoles().Create(ctx, userRole))
	}

	synchronizer.On("SyncPractitionerForRoleRemoved", mock.Anything, mock.MatchedBy(func(removed *models.UserRole) bool {
		return removed.RoleID == hygienist.ID && removed.RoleName == "hygienist"
	})).Return(errors.New("sync unavailable")).Twice()

	require.NoError(t, uc.DeleteRole(ctx, hygienist.ID), "sync failures never fail the delete")
	synchronizer.AssertExpectations(t)
}

func TestDeletePractitionerRoleRemovesPractitioners(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	log := zap.NewNop()
	entitySynchronizer := synchronizer.NewSynchronizer(
		store.Users(), store.Roles(), store.UserRoles(), store.Practitioners(), store.AdminIdentities(), log,
	)
	uc := &roleUsecase{
		RoleRepository:     store.Roles(),
		UserRoleRepository: store.UserRoles(),
		Synchronizer:       entitySynchronizer,
		Log:                log,
	}

	role := &models.Role{Name: constvars.RolePractitioner}
	require.NoError(t, store.Roles().Create(ctx, role))
	for _, username := range []string{"dentist", "ortho"} {
		user := &models.User{Username: username, Name: username, Email: username + "@clinic.test", Status: constvars.UserStatusActive}
		require.NoError(t, store.Users().Create(ctx, user))
		userRole := &models.UserRole{UserID: user.ID, RoleID: role.ID}
		require.NoError(t, store.UserRoles().Create(ctx, userRole))
		require.NoError(t, entitySynchronizer.SyncPractitionerForRoleAssigned(ctx, userRole))
	}

	practitioners, err := store.Practitioners().FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, practitioners, 2)

	require.NoError(t, uc.DeleteRole(ctx, role.ID))

	practitioners, err = store.Practitioners().FindAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, practitioners)
}
