package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type AppointmentNotifier interface {
	PublishAppointmentEvent(ctx context.Context, eventType string, appointment *models.Appointment) error
}
