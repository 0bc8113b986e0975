package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
	"time"
)

type AppointmentUsecase interface {
	RequestAppointment(ctx context.Context, request *requests.RequestAppointment) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID int64, actingUserID *int64) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter *requests.ListAppointments) ([]models.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID int64) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment, actingUserID *int64) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID int64, request *requests.PatchAppointment) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID int64) error
}

type AppointmentRepository interface {
	FindAll(ctx context.Context, filter *requests.ListAppointments) ([]models.Appointment, error)
	FindByID(ctx context.Context, appointmentID int64) (*models.Appointment, error)
	FindSummariesByPatientID(ctx context.Context, patientID int64) ([]models.AppointmentSummary, error)
	// Cancel reports whether the row actually transitioned to cancelled.
	Cancel(ctx context.Context, appointmentID int64) (changed bool, err error)
	Delete(ctx context.Context, appointmentID int64) (deleted bool, err error)
	// WithScheduleLock runs fn inside one transaction that holds the schedule
	// locks of the patient and, when given, the practitioner. fn's writes are
	// committed only if it returns nil.
	WithScheduleLock(ctx context.Context, patientID int64, practitionerID *int64, fn func(store AppointmentScheduleStore) error) error
}

// AppointmentScheduleStore is the transaction scoped view used by the
// conflict checker.
type AppointmentScheduleStore interface {
	ExistsActiveForPatient(ctx context.Context, patientID int64, from, to time.Time, excludeID int64) (bool, error)
	ExistsActiveForPractitioner(ctx context.Context, practitionerID int64, from, to time.Time, excludeID int64) (bool, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
}
