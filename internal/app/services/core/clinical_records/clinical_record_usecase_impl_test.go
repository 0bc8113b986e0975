package clinicalRecords

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
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

func newTestUsecase(store *memstore.Store) *clinicalRecordUsecase {
	return &clinicalRecordUsecase{
		ClinicalRecordRepository: store.ClinicalRecords(),
		PatientRepository:        store.Patients(),
		Log:                      zap.NewNop(),
	}
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func TestClinicalRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newTestUsecase(store)

	patient := &models.Patient{Name: "Luis Vega", Gender: "M"}
	require.NoError(t, store.Patients().Create(ctx, patient))

	attended := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	record, err := uc.CreateClinicalRecord(ctx, &requests.CreateClinicalRecord{
		PatientID:   &patient.ID,
		AttendedAt:  &attended,
		Description: "Routine cleaning",
	})
	require.NoError(t, err)
	assert.Equal(t, attended, record.AttendedAt)

	diagnosis := "Gingivitis"
	updated, err := uc.UpdateClinicalRecord(ctx, record.ID, &requests.PatchClinicalRecord{Diagnosis: &diagnosis})
	require.NoError(t, err)
	assert.Equal(t, "Routine cleaning", updated.Description)
	assert.Equal(t, "Gingivitis", updated.Diagnosis)

	records, err := uc.ListClinicalRecords(ctx, &patient.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, uc.DeleteClinicalRecord(ctx, record.ID))
	_, err = uc.GetClinicalRecordByID(ctx, record.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestCreateClinicalRecordForUnknownPatient(t *testing.T) {
	uc := newTestUsecase(memstore.New())
	missing := int64(77)

	_, err := uc.CreateClinicalRecord(context.Background(), &requests.CreateClinicalRecord{
		PatientID:   &missing,
		Description: "Extraction",
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}
