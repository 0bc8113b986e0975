package notification

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type AppointmentEvent struct {
	EventType      string    `json:"event_type"`
	AppointmentID  int64     `json:"appointment_id"`
	PatientID      int64     `json:"patient_id"`
	PractitionerID *int64    `json:"practitioner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// publisher is the subset of *amqp091.Channel the notifier needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type appointmentNotifier struct {
	Channel     publisher
	OpenChannel func() (publisher, error)
	Queue       string
	Log         *zap.Logger
	mu          sync.Mutex
}

var (
	appointmentNotifierInstance contracts.AppointmentNotifier
	onceAppointmentNotifier     sync.Once
	appointmentNotifierError    error
)

func NewAppointmentNotifier(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.AppointmentNotifier, error) {
	onceAppointmentNotifier.Do(func() {
		openChannel := func() (publisher, error) {
			channel, err := rabbitMQConnection.Channel()
			if err != nil {
				return nil, err
			}
			return channel, nil
		}
		channel, err := openChannel()
		if err != nil {
			appointmentNotifierError = err
			return
		}
		instance := &appointmentNotifier{
			Channel:     channel,
			OpenChannel: openChannel,
			Queue:       queue,
			Log:         logger,
		}
		appointmentNotifierInstance = instance
	})
	return appointmentNotifierInstance, appointmentNotifierError
}

func (s *appointmentNotifier) PublishAppointmentEvent(ctx context.Context, eventType string, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("appointmentNotifier.PublishAppointmentEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	body, err := json.Marshal(AppointmentEvent{
		EventType:      eventType,
		AppointmentID:  appointment.ID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		ScheduledAt:    appointment.ScheduledAt,
		Status:         appointment.Status,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.Log.Error("appointmentNotifier.PublishAppointmentEvent error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Type:         eventType,
		MessageId:    requestID,
		Timestamp:    time.Now(),
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	err = s.publish(ctx, requestID, message)
	if err != nil {
		s.Log.Error("appointmentNotifier.PublishAppointmentEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("appointmentNotifier.PublishAppointmentEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)
	return nil
}

// publish retries once on a freshly opened channel. A channel is closed by
// the broker after any channel-level error and never recovers on its own.
func (s *appointmentNotifier) publish(ctx context.Context, requestID string, message amqp091.Publishing) error {
	channel, err := s.currentChannel()
	if err == nil {
		err = channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
		if err == nil {
			return nil
		}
	}

	s.Log.Warn("appointmentNotifier.publish reopening channel",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
		zap.Error(err),
	)
	channel, err = s.reopenChannel(channel)
	if err != nil {
		return err
	}
	return channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
}

func (s *appointmentNotifier) currentChannel() (publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Channel != nil {
		return s.Channel, nil
	}
	return s.openLocked()
}

// reopenChannel replaces failed unless another publisher already did.
func (s *appointmentNotifier) reopenChannel(failed publisher) (publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Channel != nil && s.Channel != failed {
		return s.Channel, nil
	}
	if s.Channel != nil {
		_ = s.Channel.Close()
		s.Channel = nil
	}
	return s.openLocked()
}

func (s *appointmentNotifier) openLocked() (publisher, error) {
	channel, err := s.OpenChannel()
	if err != nil {
		return nil, err
	}
	s.Channel = channel
	return channel, nil
}
