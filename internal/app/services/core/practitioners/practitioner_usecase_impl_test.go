package practitioners

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase() (*memstore.Store, *practitionerUsecase) {
	store := memstore.New()
	return store, &practitionerUsecase{
		PractitionerRepository:  store.Practitioners(),
		AdminIdentityRepository: store.AdminIdentities(),
		Log:                     zap.NewNop(),
	}
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func TestCreatePractitionerWithoutLogin(t *testing.T) {
	store, uc := newTestUsecase()

	practitioner, err := uc.CreatePractitioner(context.Background(), &requests.CreatePractitioner{Name: "Dr. Ruiz"})
	require.NoError(t, err)

	assert.Equal(t, "General", practitioner.Specialty)
	assert.Nil(t, practitioner.AdminIdentityID)
	assert.Equal(t, 0, store.AdminIdentityCount())
}

func TestCreatePractitionerProvisionsAdminIdentity(t *testing.T) {
	store, uc := newTestUsecase()
	ctx := context.Background()

	practitioner, err := uc.CreatePractitioner(ctx, &requests.CreatePractitioner{
		Name:      "Dr. Ruiz",
		Specialty: "Orthodontics",
		Email:     "ruiz@clinic.test",
		Username:  "druiz",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	require.NotNil(t, practitioner.AdminIdentityID)

	identity, err := store.AdminIdentities().FindByID(ctx, *practitioner.AdminIdentityID)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "druiz", identity.Username)
	assert.Equal(t, "Dr. Ruiz", identity.FirstName)
	assert.True(t, identity.IsActive)
	assert.True(t, utils.CheckPasswordHash("s3cret", identity.PasswordHash))

	_, err = uc.CreatePractitioner(ctx, &requests.CreatePractitioner{
		Name:     "Dr. Other",
		Username: "druiz",
		Password: "another",
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Equal(t, 1, store.AdminIdentityCount())
}

func TestUpdatePractitionerPatch(t *testing.T) {
	_, uc := newTestUsecase()
	ctx := context.Background()

	created, err := uc.CreatePractitioner(ctx, &requests.CreatePractitioner{Name: "Dr. Ruiz", Phone: "555"})
	require.NoError(t, err)

	license := "LIC-42"
	updated, err := uc.UpdatePractitioner(ctx, created.ID, &requests.PatchPractitioner{LicenseNumber: &license})
	require.NoError(t, err)
	assert.Equal(t, "LIC-42", updated.LicenseNumber)
	assert.Equal(t, "555", updated.Phone)

	_, err = uc.UpdatePractitioner(ctx, 999, &requests.PatchPractitioner{LicenseNumber: &license})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestDeletePractitionerRemovesIdentityAndUnlinksAppointments(t *testing.T) {
	store, uc := newTestUsecase()
	ctx := context.Background()

	practitioner, err := uc.CreatePractitioner(ctx, &requests.CreatePractitioner{
		Name:     "Dr. Ruiz",
		Username: "druiz",
		Password: "s3cret",
	})
	require.NoError(t, err)

	patient := &models.Patient{Name: "Ana"}
	require.NoError(t, store.Patients().Create(ctx, patient))
	appointment := &models.Appointment{
		PatientID:      patient.ID,
		PractitionerID: &practitioner.ID,
		ScheduledAt:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Status:         "pending",
	}
	require.NoError(t, store.Appointments().WithScheduleLock(ctx, patient.ID, &practitioner.ID, func(tx contracts.AppointmentScheduleStore) error {
		return tx.Create(ctx, appointment)
	}))

	require.NoError(t, uc.DeletePractitioner(ctx, practitioner.ID))
	assert.Equal(t, 0, store.AdminIdentityCount())

	stored, err := store.Appointments().FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.PractitionerID)

	assert.Equal(t, http.StatusNotFound, statusOf(uc.DeletePractitioner(ctx, practitioner.ID)))
}
