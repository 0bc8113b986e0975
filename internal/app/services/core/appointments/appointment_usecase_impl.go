package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	PatientRepository      contracts.PatientRepository
	PractitionerRepository contracts.PractitionerRepository
	AuditUsecase           contracts.AuditUsecase
	AppointmentNotifier    contracts.AppointmentNotifier
	Log                    *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	practitionerRepository contracts.PractitionerRepository,
	auditUsecase contracts.AuditUsecase,
	appointmentNotifier contracts.AppointmentNotifier,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository:  appointmentRepository,
			PatientRepository:      patientRepository,
			PractitionerRepository: practitionerRepository,
			AuditUsecase:           auditUsecase,
			AppointmentNotifier:    appointmentNotifier,
			Log:                    logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

// RequestAppointment books a pending appointment unless the patient, or the
// practitioner when one is given, already has a non-cancelled appointment
// within one hour of the requested time.
func (uc *appointmentUsecase) RequestAppointment(ctx context.Context, request *requests.RequestAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RequestAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.PatientID == nil {
		return nil, exceptions.ErrFieldRequired(nil, "patientId")
	}
	if request.Timestamp == nil {
		return nil, exceptions.ErrFieldRequired(nil, "timestamp")
	}

	appointment := &models.Appointment{
		PatientID:      *request.PatientID,
		PractitionerID: request.PractitionerID,
		ScheduledAt:    request.Timestamp.UTC(),
		Status:         constvars.AppointmentStatusPending,
	}

	err := uc.ensureReferencesExist(ctx, appointment)
	if err != nil {
		return nil, err
	}

	err = uc.scheduleAppointment(ctx, appointment, true)
	if err != nil {
		uc.Log.Info("appointmentUsecase.RequestAppointment rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingPatientIDKey, appointment.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterAppointmentRequested(ctx, appointment, request.ActingUserID)
	utils.LogBusinessEvent(uc.Log, constvars.EventAppointmentRequested, requestID,
		zap.Int64(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Int64(constvars.LoggingPatientIDKey, appointment.PatientID),
	)

	uc.Log.Info("appointmentUsecase.RequestAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

// CancelAppointment is idempotent. Cancelling an already cancelled
// appointment returns it unchanged.
func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID int64, actingUserID *int64) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	changed, err := uc.AppointmentRepository.Cancel(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment, err := uc.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if changed {
		if actingUserID != nil {
			utils.BestEffort(ctx, uc.Log, "appointmentUsecase.CancelAppointment audit", func(ctx context.Context) error {
				return uc.AuditUsecase.Record(ctx, *actingUserID, fmt.Sprintf(constvars.AuditActionAppointmentCancelled, appointment.ID))
			})
		}
		uc.notify(ctx, constvars.EventAppointmentCancelled, appointment)
		utils.LogBusinessEvent(uc.Log, constvars.EventAppointmentCancelled, requestID,
			zap.Int64(constvars.LoggingAppointmentIDKey, appointment.ID),
		)
	}

	return appointment, nil
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, filter *requests.ListAppointments) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.AppointmentRepository.FindAll(ctx, filter)
}

func (uc *appointmentUsecase) GetAppointmentByID(ctx context.Context, appointmentID int64) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameAppointment)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment, actingUserID *int64) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointment := &models.Appointment{Status: constvars.AppointmentStatusPending}
	applyAppointmentPatch(appointment, request.ToPatch())

	err := uc.ensureReferencesExist(ctx, appointment)
	if err != nil {
		return nil, err
	}

	err = uc.scheduleAppointment(ctx, appointment, true)
	if err != nil {
		return nil, err
	}

	uc.afterAppointmentRequested(ctx, appointment, actingUserID)
	return appointment, nil
}

// UpdateAppointment runs the same conflict rules as a new request, ignoring
// the appointment's own row. Cancelled results skip the check.
func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID int64, request *requests.PatchAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	previousStatus := appointment.Status

	applyAppointmentPatch(appointment, request)

	err = uc.ensureReferencesExist(ctx, appointment)
	if err != nil {
		return nil, err
	}

	err = uc.scheduleAppointment(ctx, appointment, false)
	if err != nil {
		return nil, err
	}

	if previousStatus != constvars.AppointmentStatusCancelled && appointment.Status == constvars.AppointmentStatusCancelled {
		uc.notify(ctx, constvars.EventAppointmentCancelled, appointment)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	deleted, err := uc.AppointmentRepository.Delete(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameAppointment)
	}
	return nil
}

func (uc *appointmentUsecase) scheduleAppointment(ctx context.Context, appointment *models.Appointment, isNew bool) error {
	return uc.AppointmentRepository.WithScheduleLock(ctx, appointment.PatientID, appointment.PractitionerID, func(store contracts.AppointmentScheduleStore) error {
		if appointment.Status != constvars.AppointmentStatusCancelled {
			err := checkConflicts(ctx, store, appointment)
			if err != nil {
				return err
			}
		}
		if isNew {
			return store.Create(ctx, appointment)
		}
		return store.Update(ctx, appointment)
	})
}

// checkConflicts evaluates the patient rule before the practitioner rule and
// reports only the first violation.
func checkConflicts(ctx context.Context, store contracts.AppointmentScheduleStore, appointment *models.Appointment) error {
	from, to := utils.ConflictWindowBounds(appointment.ScheduledAt)

	taken, err := store.ExistsActiveForPatient(ctx, appointment.PatientID, from, to, appointment.ID)
	if err != nil {
		return err
	}
	if taken {
		return exceptions.ErrAppointmentPatientConflict(nil)
	}

	if appointment.PractitionerID == nil {
		return nil
	}
	taken, err = store.ExistsActiveForPractitioner(ctx, *appointment.PractitionerID, from, to, appointment.ID)
	if err != nil {
		return err
	}
	if taken {
		return exceptions.ErrAppointmentPractitionerConflict(nil)
	}
	return nil
}

func (uc *appointmentUsecase) ensureReferencesExist(ctx context.Context, appointment *models.Appointment) error {
	exists, err := uc.PatientRepository.Exists(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	if !exists {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNamePatient)
	}

	if appointment.PractitionerID != nil {
		exists, err = uc.PractitionerRepository.Exists(ctx, *appointment.PractitionerID)
		if err != nil {
			return err
		}
		if !exists {
			return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNamePractitioner)
		}
	}
	return nil
}

func (uc *appointmentUsecase) afterAppointmentRequested(ctx context.Context, appointment *models.Appointment, actingUserID *int64) {
	if actingUserID != nil {
		utils.BestEffort(ctx, uc.Log, "appointmentUsecase audit appointment requested", func(ctx context.Context) error {
			return uc.AuditUsecase.Record(ctx, *actingUserID, fmt.Sprintf(constvars.AuditActionAppointmentRequested, appointment.ID))
		})
	}
	uc.notify(ctx, constvars.EventAppointmentRequested, appointment)
}

func (uc *appointmentUsecase) notify(ctx context.Context, eventType string, appointment *models.Appointment) {
	if uc.AppointmentNotifier == nil {
		return
	}
	utils.BestEffort(ctx, uc.Log, "appointmentUsecase notify "+eventType, func(ctx context.Context) error {
		return uc.AppointmentNotifier.PublishAppointmentEvent(ctx, eventType, appointment)
	})
}

func applyAppointmentPatch(appointment *models.Appointment, patch *requests.PatchAppointment) {
	if patch.PatientID != nil {
		appointment.PatientID = *patch.PatientID
	}
	if patch.PractitionerID != nil {
		appointment.PractitionerID = patch.PractitionerID
	} else if patch.ClearPractitioner {
		appointment.PractitionerID = nil
	}
	if patch.Timestamp != nil {
		appointment.ScheduledAt = patch.Timestamp.UTC()
	}
	if patch.Status != nil {
		appointment.Status = *patch.Status
	}
}
