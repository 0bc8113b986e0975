package memstore

import (
	"clinic-service/internal/app/models"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type ObjectStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	// FailRemove makes RemoveObject return an error.
	FailRemove bool
}

func NewObjectStorage() *ObjectStorage {
	return &ObjectStorage{Objects: map[string][]byte{}}
}

func (o *ObjectStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Objects[objectName] = data
	return objectName, nil
}

func (o *ObjectStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	return fmt.Sprintf("http://storage.local/%s/%s", bucketName, objectName), nil
}

func (o *ObjectStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if o.FailRemove {
		return errors.New("object storage unavailable")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.Objects, objectName)
	return nil
}

func (o *ObjectStorage) Has(objectName string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.Objects[objectName]
	return ok
}

type Redis struct {
	mu     sync.Mutex
	Values map[string]string
}

func NewRedis() *Redis {
	return &Redis{Values: map[string]string{}}
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Values, key)
	return nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := encode(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Values[key] = encoded
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Values[key], nil
}

func (r *Redis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := encode(value)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Values[key]; ok {
		return false, nil
	}
	r.Values[key] = encoded
	return true, nil
}

func encode(value interface{}) (string, error) {
	if str, ok := value.(string); ok {
		return str, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type PublishedEvent struct {
	EventType     string
	AppointmentID int64
}

type Notifier struct {
	mu     sync.Mutex
	Events []PublishedEvent
	// Fail makes every publish return an error.
	Fail bool
}

func (n *Notifier) PublishAppointmentEvent(ctx context.Context, eventType string, appointment *models.Appointment) error {
	if n.Fail {
		return errors.New("broker unavailable")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, PublishedEvent{EventType: eventType, AppointmentID: appointment.ID})
	return nil
}

func (n *Notifier) Published() []PublishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]PublishedEvent(nil), n.Events...)
}
