package middlewares

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, session *models.Session, resource, action string) (models.Decision, error) {
	args := m.Called(ctx, session, resource, action)
	return args.Get(0).(models.Decision), args.Error(1)
}

func newTestMiddlewares(sessions *MockSessionService, authorizer *MockAuthorizer) *Middlewares {
	return NewMiddlewares(zap.NewNop(), sessions, authorizer, &config.InternalConfig{})
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSessionOptionalResolvesBearerAndCookie(t *testing.T) {
	sessions := new(MockSessionService)
	session := &models.Session{SessionID: "sid", UserID: 7}
	sessions.On("ResolveToken", mock.Anything, "bearer-token").Return(session, nil)
	sessions.On("ResolveToken", mock.Anything, "cookie-token").Return(session, nil)
	sessions.On("ResolveToken", mock.Anything, "stale").Return(nil, nil)
	m := newTestMiddlewares(sessions, new(MockAuthorizer))

	var seen *models.Session
	handler := m.SessionOptional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetSession(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer bearer-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, session, seen)

	seen = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: constvars.SessionCookieName, Value: "cookie-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, session, seen)

	seen = session
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer stale")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen)
}

func TestAuthorizeMapsDecisions(t *testing.T) {
	cases := []struct {
		decision models.Decision
		want     int
	}{
		{models.DecisionAllow, http.StatusOK},
		{models.DecisionDenyUnauthenticated, http.StatusUnauthorized},
		{models.DecisionDenyForbidden, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.decision.String(), func(t *testing.T) {
			authorizer := new(MockAuthorizer)
			authorizer.On("Authorize", mock.Anything, (*models.Session)(nil), constvars.ResourcePatients, constvars.ActionList).
				Return(tc.decision, nil).Once()
			m := newTestMiddlewares(new(MockSessionService), authorizer)

			rec := httptest.NewRecorder()
			m.Authorize(constvars.ResourcePatients, constvars.ActionList)(http.HandlerFunc(okHandler)).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

			assert.Equal(t, tc.want, rec.Code)
			authorizer.AssertExpectations(t)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(new(MockSessionService), new(MockAuthorizer))
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rec.Header().Get(constvars.HeaderXRequestID))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id", seen)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	m := newTestMiddlewares(new(MockSessionService), new(MockAuthorizer))
	rec := httptest.NewRecorder()
	m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiterBlocksAfterBudget(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour, time.Minute, zap.NewNop())
	now := time.Now()

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now.Add(30*time.Second)), "still blocked")
	assert.True(t, limiter.allow("10.0.0.2", now), "other clients unaffected")
	assert.True(t, limiter.allow("10.0.0.1", now.Add(2*time.Minute)), "block expires")

	handler := limiter.Limit(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	req.RemoteAddr = "10.0.0.3:5000"
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
