package session

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(store *memstore.Redis) *sessionService {
	cfg := &config.InternalConfig{}
	cfg.App.LoginSessionExpiredTimeInHours = 1
	cfg.JWT.Secret = "test-secret"
	return &sessionService{RedisRepository: store, InternalConfig: cfg, Log: zap.NewNop()}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewRedis()
	svc := newTestService(store)

	session, err := svc.CreateSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.NotEmpty(t, session.SessionID)

	token, err := svc.GenerateToken(session)
	require.NoError(t, err)

	resolved, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, session.SessionID, resolved.SessionID)
	assert.Equal(t, int64(42), resolved.UserID)

	require.NoError(t, svc.DeleteSession(ctx, session.SessionID))

	resolved, err = svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(memstore.NewRedis())

	resolved, err := svc.ResolveToken(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	foreign, err := utils.GenerateSessionJWT("abc", "other-secret", time.Now().Add(time.Hour))
	require.NoError(t, err)
	resolved, err = svc.ResolveToken(context.Background(), foreign)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestDeleteSessionWithoutID(t *testing.T) {
	svc := newTestService(memstore.NewRedis())
	assert.NoError(t, svc.DeleteSession(context.Background(), ""))
}
