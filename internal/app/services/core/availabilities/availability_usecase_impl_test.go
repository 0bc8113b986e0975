package availabilities

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func TestAvailabilityLifecycle(t *testing.T) {
	store := memstore.New()
	uc := &availabilityUsecase{
		AvailabilityRepository: store.Availabilities(),
		PractitionerRepository: store.Practitioners(),
		Log:                    zap.NewNop(),
	}
	ctx := context.Background()

	practitioner := &models.Practitioner{Name: "Dr. Ruiz"}
	require.NoError(t, store.Practitioners().Create(ctx, practitioner))

	slot := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	created, err := uc.CreateAvailability(ctx, &requests.CreateAvailability{
		PractitionerID: &practitioner.ID,
		Timestamp:      models.NewTimestamp(slot),
	})
	require.NoError(t, err)
	assert.Equal(t, constvars.AvailabilityStatusAvailable, created.Status)

	busy := constvars.AvailabilityStatusBusy
	updated, err := uc.UpdateAvailability(ctx, created.ID, &requests.PatchAvailability{Status: &busy})
	require.NoError(t, err)
	assert.Equal(t, busy, updated.Status)
	assert.True(t, updated.AvailableAt.Equal(slot))

	listed, err := uc.ListAvailabilities(ctx, &requests.ListAvailabilities{PractitionerID: &practitioner.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, uc.DeleteAvailability(ctx, created.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(uc.DeleteAvailability(ctx, created.ID)))
}

func TestCreateAvailabilityUnknownPractitioner(t *testing.T) {
	store := memstore.New()
	uc := &availabilityUsecase{
		AvailabilityRepository: store.Availabilities(),
		PractitionerRepository: store.Practitioners(),
		Log:                    zap.NewNop(),
	}

	missing := int64(12)
	slot := time.Now()
	_, err := uc.CreateAvailability(context.Background(), &requests.CreateAvailability{
		PractitionerID: &missing,
		Timestamp:      models.NewTimestamp(slot),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}
