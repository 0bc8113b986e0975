package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Advisory lock namespaces. Patient locks are always taken before
// practitioner locks.
const (
	scheduleLockPatient      = 1001
	scheduleLockPractitioner = 1002
)

type appointmentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	appointmentPostgresRepositoryInstance contracts.AppointmentRepository
	onceAppointmentPostgresRepository     sync.Once
)

func NewAppointmentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AppointmentRepository {
	onceAppointmentPostgresRepository.Do(func() {
		instance := &appointmentPostgresRepository{
			DB:  db,
			Log: logger,
		}
		appointmentPostgresRepositoryInstance = instance
	})
	return appointmentPostgresRepositoryInstance
}

func (r *appointmentPostgresRepository) FindAll(ctx context.Context, filter *requests.ListAppointments) ([]models.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindAppointmentsQuery, filter.PatientID, filter.PractitionerID, filter.Status)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		var model models.Appointment
		if err := rows.Scan(&model.ID, &model.PatientID, &model.PractitionerID, &model.ScheduledAt, &model.Status); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		appointments = append(appointments, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return appointments, nil
}

func (r *appointmentPostgresRepository) FindByID(ctx context.Context, appointmentID int64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.DB.QueryRowContext(ctx, queries.FindAppointmentByIDQuery, appointmentID).Scan(
		&appointment.ID, &appointment.PatientID, &appointment.PractitionerID, &appointment.ScheduledAt, &appointment.Status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &appointment, nil
}

func (r *appointmentPostgresRepository) FindSummariesByPatientID(ctx context.Context, patientID int64) ([]models.AppointmentSummary, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindAppointmentSummariesByPatientIDQuery, patientID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	summaries := make([]models.AppointmentSummary, 0)
	for rows.Next() {
		var model models.AppointmentSummary
		if err := rows.Scan(&model.ID, &model.ScheduledAt, &model.Status, &model.PractitionerName); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		summaries = append(summaries, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return summaries, nil
}

func (r *appointmentPostgresRepository) Cancel(ctx context.Context, appointmentID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.CancelAppointmentQuery, appointmentID)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected > 0, nil
}

func (r *appointmentPostgresRepository) Delete(ctx context.Context, appointmentID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteAppointmentQuery, appointmentID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}

func (r *appointmentPostgresRepository) WithScheduleLock(ctx context.Context, patientID int64, practitionerID *int64, fn func(store contracts.AppointmentScheduleStore) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, queries.AdvisoryXactLockQuery, scheduleLockPatient, patientID)
	if err != nil {
		return exceptions.ErrPostgresDBAdvisoryLock(err)
	}
	if practitionerID != nil {
		_, err = tx.ExecContext(ctx, queries.AdvisoryXactLockQuery, scheduleLockPractitioner, *practitionerID)
		if err != nil {
			return exceptions.ErrPostgresDBAdvisoryLock(err)
		}
	}

	r.Log.Debug("appointmentPostgresRepository.WithScheduleLock locks acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patientID),
	)

	err = fn(&appointmentScheduleStore{tx: tx})
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	return nil
}

type appointmentScheduleStore struct {
	tx *sql.Tx
}

func (s *appointmentScheduleStore) ExistsActiveForPatient(ctx context.Context, patientID int64, from, to time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := s.tx.QueryRowContext(ctx, queries.ExistsActiveAppointmentForPatientQuery, patientID, from, to, excludeID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (s *appointmentScheduleStore) ExistsActiveForPractitioner(ctx context.Context, practitionerID int64, from, to time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := s.tx.QueryRowContext(ctx, queries.ExistsActiveAppointmentForPractitionerQuery, practitionerID, from, to, excludeID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (s *appointmentScheduleStore) Create(ctx context.Context, appointment *models.Appointment) error {
	err := s.tx.QueryRowContext(ctx, queries.CreateAppointmentQuery,
		appointment.PatientID, appointment.PractitionerID, appointment.ScheduledAt, appointment.Status,
	).Scan(&appointment.ID)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameAppointmentParty)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (s *appointmentScheduleStore) Update(ctx context.Context, appointment *models.Appointment) error {
	_, err := s.tx.ExecContext(ctx, queries.UpdateAppointmentQuery,
		appointment.PatientID, appointment.PractitionerID, appointment.ScheduledAt, appointment.Status, appointment.ID,
	)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameAppointmentParty)
		}
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
