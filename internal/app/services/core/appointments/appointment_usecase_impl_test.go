package appointments

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
	fail    bool
}

func (a *recordingAudit) Record(ctx context.Context, actorUserID int64, action string) error {
	if a.fail {
		return errors.New("audit store unavailable")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) ListAuditEntries(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	return nil, nil
}

type appointmentFixture struct {
	store    *memstore.Store
	audit    *recordingAudit
	notifier *memstore.Notifier
	usecase  *appointmentUsecase
}

func newAppointmentFixture() *appointmentFixture {
	store := memstore.New()
	audit := &recordingAudit{}
	notifier := &memstore.Notifier{}
	return &appointmentFixture{
		store:    store,
		audit:    audit,
		notifier: notifier,
		usecase: &appointmentUsecase{
			AppointmentRepository:  store.Appointments(),
			PatientRepository:      store.Patients(),
			PractitionerRepository: store.Practitioners(),
			AuditUsecase:           audit,
			AppointmentNotifier:    notifier,
			Log:                    zap.NewNop(),
		},
	}
}

func (f *appointmentFixture) patient(t *testing.T) int64 {
	t.Helper()
	patient := &models.Patient{Name: "Ana"}
	require.NoError(t, f.store.Patients().Create(context.Background(), patient))
	return patient.ID
}

func (f *appointmentFixture) practitioner(t *testing.T) int64 {
	t.Helper()
	practitioner := &models.Practitioner{Name: "Dr. Ruiz"}
	require.NoError(t, f.store.Practitioners().Create(context.Background(), practitioner))
	return practitioner.ID
}

func at(value string) *models.Timestamp {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return models.NewTimestamp(parsed)
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func clientMessageOf(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return ""
}

func TestRequestAppointmentPatientWindow(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)

	first, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T09:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusPending, first.Status)

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T09:30:00Z"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, constvars.ErrClientPatientConflict, clientMessageOf(err))

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T08:00:00Z"),
	})
	require.NoError(t, err, "an existing appointment exactly one hour later is outside the window")

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T11:01:00Z"),
	})
	require.NoError(t, err)

	all, err := f.usecase.ListAppointments(ctx, &requests.ListAppointments{PatientID: &patientID})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRequestAppointmentPractitionerConflict(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	firstPatient := f.patient(t)
	secondPatient := f.patient(t)
	practitionerID := f.practitioner(t)

	_, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:      &firstPatient,
		PractitionerID: &practitionerID,
		Timestamp:      at("2024-01-10T09:00:00Z"),
	})
	require.NoError(t, err)

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:      &secondPatient,
		PractitionerID: &practitionerID,
		Timestamp:      at("2024-01-10T08:15:00Z"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, constvars.ErrClientPractitionerConflict, clientMessageOf(err))
}

func TestRequestAppointmentPatientRuleReportedFirst(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)
	practitionerID := f.practitioner(t)

	_, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:      &patientID,
		PractitionerID: &practitionerID,
		Timestamp:      at("2024-01-10T09:00:00Z"),
	})
	require.NoError(t, err)

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:      &patientID,
		PractitionerID: &practitionerID,
		Timestamp:      at("2024-01-10T09:10:00Z"),
	})
	require.Error(t, err)
	assert.Equal(t, constvars.ErrClientPatientConflict, clientMessageOf(err))
}

func TestRequestAppointmentUnknownReferences(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	missing := int64(404)

	_, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &missing,
		Timestamp: at("2024-01-10T09:00:00Z"),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	patientID := f.patient(t)
	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:      &patientID,
		PractitionerID: &missing,
		Timestamp:      at("2024-01-10T09:00:00Z"),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{PatientID: &patientID})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestCancelAppointmentFreesTheSlot(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)
	actor := int64(7)

	booked, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:    &patientID,
		Timestamp:    at("2024-01-10T09:00:00Z"),
		ActingUserID: &actor,
	})
	require.NoError(t, err)

	cancelled, err := f.usecase.CancelAppointment(ctx, booked.ID, &actor)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusCancelled, cancelled.Status)

	again, err := f.usecase.CancelAppointment(ctx, booked.ID, &actor)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusCancelled, again.Status)

	_, err = f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T09:00:00Z"),
	})
	require.NoError(t, err)

	assert.Len(t, f.audit.actions, 2, "one requested and one cancelled entry")
	events := f.notifier.Published()
	require.Len(t, events, 3)
	assert.Equal(t, constvars.EventAppointmentRequested, events[0].EventType)
	assert.Equal(t, constvars.EventAppointmentCancelled, events[1].EventType)
	assert.Equal(t, booked.ID, events[1].AppointmentID)
	assert.Equal(t, constvars.EventAppointmentRequested, events[2].EventType)
}

func TestCancelAppointmentNotFound(t *testing.T) {
	f := newAppointmentFixture()
	_, err := f.usecase.CancelAppointment(context.Background(), 99, nil)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestSideEffectFailuresAreSwallowed(t *testing.T) {
	f := newAppointmentFixture()
	f.audit.fail = true
	f.notifier.Fail = true
	ctx := context.Background()
	patientID := f.patient(t)
	actor := int64(1)

	booked, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
		PatientID:    &patientID,
		Timestamp:    at("2024-01-10T09:00:00Z"),
		ActingUserID: &actor,
	})
	require.NoError(t, err)

	_, err = f.usecase.CancelAppointment(ctx, booked.ID, &actor)
	require.NoError(t, err)
}

func TestConcurrentRequestsBookOnlyOnce(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.usecase.RequestAppointment(ctx, &requests.RequestAppointment{
				PatientID: &patientID,
				Timestamp: at("2024-01-10T09:00:00Z"),
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestUpdateAppointmentChecksConflictsExceptItself(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)

	first, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T09:00:00Z"),
	}, nil)
	require.NoError(t, err)
	second, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T12:00:00Z"),
	}, nil)
	require.NoError(t, err)

	moved, err := f.usecase.UpdateAppointment(ctx, first.ID, &requests.PatchAppointment{Timestamp: at("2024-01-10T09:20:00Z")})
	require.NoError(t, err)
	assert.True(t, moved.ScheduledAt.Equal(at("2024-01-10T09:20:00Z").Time))

	_, err = f.usecase.UpdateAppointment(ctx, second.ID, &requests.PatchAppointment{Timestamp: at("2024-01-10T09:40:00Z")})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	stored, err := f.usecase.GetAppointmentByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, stored.ScheduledAt.Equal(at("2024-01-10T12:00:00Z").Time), "a rejected update leaves the row unchanged")

	cancelled := constvars.AppointmentStatusCancelled
	_, err = f.usecase.UpdateAppointment(ctx, second.ID, &requests.PatchAppointment{
		Timestamp: at("2024-01-10T09:40:00Z"),
		Status:    &cancelled,
	})
	require.NoError(t, err, "cancelled appointments are never in conflict")
}

func TestDeleteAppointment(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()
	patientID := f.patient(t)

	booked, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
		PatientID: &patientID,
		Timestamp: at("2024-01-10T09:00:00Z"),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeleteAppointment(ctx, booked.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(f.usecase.DeleteAppointment(ctx, booked.ID)))
}
