package notification

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	fail      bool
	closed    bool
	published []amqp091.Publishing
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if c.fail || c.closed {
		return amqp091.ErrClosed
	}
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type channelFactory struct {
	channels []*fakeChannel
	err      error
}

func (f *channelFactory) open() (publisher, error) {
	if f.err != nil {
		return nil, f.err
	}
	channel := &fakeChannel{}
	f.channels = append(f.channels, channel)
	return channel, nil
}

func newTestNotifier(channel *fakeChannel, factory *channelFactory) *appointmentNotifier {
	notifier := &appointmentNotifier{
		OpenChannel: factory.open,
		Queue:       "clinic.appointments",
		Log:         zap.NewNop(),
	}
	if channel != nil {
		notifier.Channel = channel
	}
	return notifier
}

func testAppointment() *models.Appointment {
	return &models.Appointment{
		ID:          7,
		PatientID:   3,
		ScheduledAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Status:      constvars.AppointmentStatusPending,
	}
}

func TestPublishAppointmentEvent(t *testing.T) {
	channel := &fakeChannel{}
	notifier := newTestNotifier(channel, &channelFactory{})

	require.NoError(t, notifier.PublishAppointmentEvent(context.Background(), constvars.EventAppointmentRequested, testAppointment()))
	require.Len(t, channel.published, 1)

	var event AppointmentEvent
	require.NoError(t, json.Unmarshal(channel.published[0].Body, &event))
	assert.Equal(t, constvars.EventAppointmentRequested, event.EventType)
	assert.Equal(t, int64(7), event.AppointmentID)
	assert.Equal(t, amqp091.Persistent, channel.published[0].DeliveryMode)
}

func TestPublishReopensClosedChannel(t *testing.T) {
	broken := &fakeChannel{fail: true}
	factory := &channelFactory{}
	notifier := newTestNotifier(broken, factory)
	ctx := context.Background()

	require.NoError(t, notifier.PublishAppointmentEvent(ctx, constvars.EventAppointmentRequested, testAppointment()))
	assert.True(t, broken.closed)
	require.Len(t, factory.channels, 1)
	assert.Len(t, factory.channels[0].published, 1)

	require.NoError(t, notifier.PublishAppointmentEvent(ctx, constvars.EventAppointmentCancelled, testAppointment()))
	assert.Len(t, factory.channels, 1, "a healthy channel is reused")
	assert.Len(t, factory.channels[0].published, 2)
}

func TestPublishFailsWhenChannelCannotReopen(t *testing.T) {
	broken := &fakeChannel{fail: true}
	factory := &channelFactory{err: errors.New("connection closed")}
	notifier := newTestNotifier(broken, factory)

	err := notifier.PublishAppointmentEvent(context.Background(), constvars.EventAppointmentRequested, testAppointment())
	assert.Error(t, err)

	factory.err = nil
	require.NoError(t, notifier.PublishAppointmentEvent(context.Background(), constvars.EventAppointmentRequested, testAppointment()))
	require.Len(t, factory.channels, 1)
}
