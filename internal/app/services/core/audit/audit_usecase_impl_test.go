package audit

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	store := memstore.New()
	uc := &auditUsecase{AuditRepository: store.AuditEntries(), Log: zap.NewNop()}
	ctx := context.Background()

	require.NoError(t, uc.Record(ctx, 1, "login"))
	require.NoError(t, uc.Record(ctx, 2, "appointment requested (appointment_id=5)"))
	require.NoError(t, uc.Record(ctx, 1, "logout"))

	entries, err := uc.ListAuditEntries(ctx, &models.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "logout", entries[0].Action)
	assert.Equal(t, "login", entries[2].Action)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	}
}

func TestListAuditEntriesFilters(t *testing.T) {
	store := memstore.New()
	uc := &auditUsecase{AuditRepository: store.AuditEntries(), Log: zap.NewNop()}
	ctx := context.Background()

	require.NoError(t, uc.Record(ctx, 1, "Login"))
	require.NoError(t, uc.Record(ctx, 2, "login"))
	require.NoError(t, uc.Record(ctx, 2, "user created (user_id=9)"))

	byAction, err := uc.ListAuditEntries(ctx, &models.AuditFilter{Action: "LOGIN"})
	require.NoError(t, err)
	assert.Len(t, byAction, 2)

	userID := int64(2)
	byUser, err := uc.ListAuditEntries(ctx, &models.AuditFilter{UserID: &userID})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	future := time.Now().Add(time.Hour)
	none, err := uc.ListAuditEntries(ctx, &models.AuditFilter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}
