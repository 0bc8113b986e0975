package auth

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, userID int64) (*models.Session, error) {
	args := m.Called(ctx, userID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) ResolveToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) GenerateToken(session *models.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
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

func clientMessageOf(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return ""
}

func devMessageOf(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.DevMessage
	}
	return ""
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

type authFixture struct {
	store    *memstore.Store
	sessions *MockSessionService
	audit    *recordingAudit
	usecase  *authUsecase
	user     *models.User
}

func newAuthFixture(t *testing.T, status string) *authFixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{Username: "ana", Name: "Ana", Email: "ana@clinic.test", PasswordHash: hash, Status: status}
	require.NoError(t, store.Users().Create(ctx, user))

	role := &models.Role{Name: constvars.RoleReceptionist}
	require.NoError(t, store.Roles().Create(ctx, role))
	require.NoError(t, store.UserRoles().Create(ctx, &models.UserRole{UserID: user.ID, RoleID: role.ID}))

	sessions := new(MockSessionService)
	audit := &recordingAudit{}
	return &authFixture{
		store:    store,
		sessions: sessions,
		audit:    audit,
		usecase: &authUsecase{
			UserRepository:     store.Users(),
			UserRoleRepository: store.UserRoles(),
			SessionService:     sessions,
			AuditUsecase:       audit,
			Log:                zap.NewNop(),
		},
		user: user,
	}
}

func TestLoginSucceeds(t *testing.T) {
	f := newAuthFixture(t, constvars.UserStatusActive)
	session := &models.Session{SessionID: "sid", UserID: f.user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	f.sessions.On("CreateSession", mock.Anything, f.user.ID).Return(session, nil).Once()
	f.sessions.On("GenerateToken", session).Return("signed-token", nil).Once()

	response, err := f.usecase.Login(context.Background(), &requests.LoginUser{Email: " ANA@clinic.test ", Credential: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, []string{constvars.RoleReceptionist}, response.User.Roles)
	assert.Equal(t, []string{constvars.AuditActionLogin}, f.audit.actions)

	stored, err := f.store.Users().FindByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
	f.sessions.AssertExpectations(t)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	active := newAuthFixture(t, constvars.UserStatusActive)
	inactive := newAuthFixture(t, constvars.UserStatusInactive)

	cases := []struct {
		name    string
		fixture *authFixture
		request *requests.LoginUser
	}{
		{"unknown email", active, &requests.LoginUser{Email: "nobody@clinic.test", Credential: "s3cret"}},
		{"wrong credential", active, &requests.LoginUser{Email: "ana@clinic.test", Credential: "wrong"}},
		{"inactive account", inactive, &requests.LoginUser{Email: "ana@clinic.test", Credential: "s3cret"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fixture.usecase.Login(context.Background(), tc.request)
			assert.Equal(t, http.StatusBadRequest, statusOf(err))
			assert.Equal(t, constvars.ErrClientInvalidCredentials, clientMessageOf(err))
			assert.Equal(t, constvars.ErrDevInvalidCredentials, devMessageOf(err), "dev_message is returned outside production")
			assert.Empty(t, tc.fixture.audit.actions)
		})
	}
	active.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	inactive.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t, constvars.UserStatusActive)
	f.sessions.On("DeleteSession", mock.Anything, "sid").Return(nil).Once()

	require.NoError(t, f.usecase.Logout(context.Background(), nil))
	assert.Empty(t, f.audit.actions)

	require.NoError(t, f.usecase.Logout(context.Background(), &models.Session{SessionID: "sid", UserID: f.user.ID}))
	assert.Equal(t, []string{constvars.AuditActionLogout}, f.audit.actions)
	f.sessions.AssertExpectations(t)
}

func TestLogoutAuditsWhenSessionStoreFails(t *testing.T) {
	f := newAuthFixture(t, constvars.UserStatusActive)
	f.sessions.On("DeleteSession", mock.Anything, "sid").Return(errors.New("redis unavailable")).Once()

	err := f.usecase.Logout(context.Background(), &models.Session{SessionID: "sid", UserID: f.user.ID})
	assert.Error(t, err)
	assert.Equal(t, []string{constvars.AuditActionLogout}, f.audit.actions)
	f.sessions.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t, constvars.UserStatusActive)

	_, err := f.usecase.Me(context.Background(), nil)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	_, err = f.usecase.Me(context.Background(), &models.Session{SessionID: "sid", UserID: 999})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	profile, err := f.usecase.Me(context.Background(), &models.Session{SessionID: "sid", UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "ana", profile.Username)
	assert.Equal(t, []string{constvars.RoleReceptionist}, profile.Roles)
}
