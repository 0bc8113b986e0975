package patients

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type patientFixture struct {
	store   *memstore.Store
	objects *memstore.ObjectStorage
	usecase *patientUsecase
}

func newPatientFixture() *patientFixture {
	store := memstore.New()
	objects := memstore.NewObjectStorage()
	cfg := &config.InternalConfig{}
	cfg.Minio.BucketName = "clinical-files"
	cfg.Minio.MinioPreSignedUrlObjectExpiryTimeInHours = 1
	return &patientFixture{
		store:   store,
		objects: objects,
		usecase: &patientUsecase{
			PatientRepository:      store.Patients(),
			AppointmentRepository:  store.Appointments(),
			ClinicalFileRepository: store.ClinicalFiles(),
			Storage:                objects,
			InternalConfig:         cfg,
			Log:                    zap.NewNop(),
		},
	}
}

func (f *patientFixture) createPatient(t *testing.T, name string) *models.Patient {
	t.Helper()
	patient, err := f.usecase.CreatePatient(context.Background(), &requests.CreatePatient{
		Name:      name,
		BirthDate: "1990-04-12",
		Gender:    "F",
	})
	require.NoError(t, err)
	return patient
}

func (f *patientFixture) attachFile(t *testing.T, patientID int64, objectName string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.objects.UploadFile(ctx, strings.NewReader("x"), 1, "text/plain", "clinical-files", objectName)
	require.NoError(t, err)
	require.NoError(t, f.store.ClinicalFiles().Create(ctx, &models.ClinicalFile{
		PatientID:  patientID,
		FileName:   objectName,
		ObjectName: objectName,
	}))
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func TestCreatePatientParsesBirthDate(t *testing.T) {
	f := newPatientFixture()
	patient := f.createPatient(t, "Ana Rojas")

	require.NotNil(t, patient.BirthDate)
	assert.Equal(t, "1990-04-12", patient.BirthDate.String())
	assert.NotZero(t, patient.ID)
}

func TestUpdatePatientAppliesOnlyGivenFields(t *testing.T) {
	f := newPatientFixture()
	patient := f.createPatient(t, "Ana Rojas")

	phone := "555-0101"
	updated, err := f.usecase.UpdatePatient(context.Background(), patient.ID, &requests.PatchPatient{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "Ana Rojas", updated.Name)
	assert.Equal(t, "555-0101", updated.Phone)
	assert.Equal(t, "F", updated.Gender)
}

func TestUpdateMissingPatientIsNotFound(t *testing.T) {
	f := newPatientFixture()
	name := "Nobody"
	_, err := f.usecase.UpdatePatient(context.Background(), 999, &requests.PatchPatient{Name: &name})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestDeletePatientCascadesAndRemovesObjects(t *testing.T) {
	f := newPatientFixture()
	ctx := context.Background()
	patient := f.createPatient(t, "Ana Rojas")
	f.attachFile(t, patient.ID, "clinical-files/1/xray.png")

	err := f.store.Appointments().WithScheduleLock(ctx, patient.ID, nil, func(store contracts.AppointmentScheduleStore) error {
		return store.Create(ctx, &models.Appointment{PatientID: patient.ID, ScheduledAt: time.Now(), Status: "pending"})
	})
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeletePatient(ctx, patient.ID))

	appointments, err := f.store.Appointments().FindSummariesByPatientID(ctx, patient.ID)
	require.NoError(t, err)
	assert.Empty(t, appointments)
	assert.False(t, f.objects.Has("clinical-files/1/xray.png"))

	err = f.usecase.DeletePatient(ctx, patient.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestDeletePatientIgnoresStorageFailures(t *testing.T) {
	f := newPatientFixture()
	patient := f.createPatient(t, "Ana Rojas")
	f.attachFile(t, patient.ID, "clinical-files/1/xray.png")
	f.objects.FailRemove = true

	require.NoError(t, f.usecase.DeletePatient(context.Background(), patient.ID))

	exists, err := f.store.Patients().Exists(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetPatientHistory(t *testing.T) {
	f := newPatientFixture()
	ctx := context.Background()
	patient := f.createPatient(t, "Ana Rojas")
	f.attachFile(t, patient.ID, "clinical-files/1/xray.png")

	practitioner := &models.Practitioner{Name: "Dr. Paredes", Specialty: "General"}
	require.NoError(t, f.store.Practitioners().Create(ctx, practitioner))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	err := f.store.Appointments().WithScheduleLock(ctx, patient.ID, &practitioner.ID, func(store contracts.AppointmentScheduleStore) error {
		if err := store.Create(ctx, &models.Appointment{PatientID: patient.ID, PractitionerID: &practitioner.ID, ScheduledAt: base, Status: "pending"}); err != nil {
			return err
		}
		return store.Create(ctx, &models.Appointment{PatientID: patient.ID, ScheduledAt: base.Add(48 * time.Hour), Status: "cancelled"})
	})
	require.NoError(t, err)

	history, err := f.usecase.GetPatientHistory(ctx, patient.ID)
	require.NoError(t, err)

	assert.Equal(t, patient.ID, history.Patient.ID)
	require.Len(t, history.Appointments, 2)
	assert.Equal(t, base.Add(48*time.Hour), history.Appointments[0].ScheduledAt)
	assert.Nil(t, history.Appointments[0].PractitionerName)
	require.NotNil(t, history.Appointments[1].PractitionerName)
	assert.Equal(t, "Dr. Paredes", *history.Appointments[1].PractitionerName)
	require.Len(t, history.Files, 1)
	assert.Contains(t, history.Files[0].URL, "clinical-files/1/xray.png")

	_, err = f.usecase.GetPatientHistory(ctx, 999)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
