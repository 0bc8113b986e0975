package memstore

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

type practitionerRepository struct{ s *Store }

func (s *Store) Practitioners() contracts.PractitionerRepository {
	return &practitionerRepository{s}
}

func (r *practitionerRepository) FindAll(ctx context.Context, search string) ([]models.Practitioner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(search)
	result := make([]models.Practitioner, 0)
	for _, practitioner := range r.s.practitioners {
		if needle == "" || strings.Contains(strings.ToLower(practitioner.Name), needle) || strings.Contains(strings.ToLower(practitioner.Specialty), needle) {
			result = append(result, practitioner)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *practitionerRepository) FindByID(ctx context.Context, practitionerID int64) (*models.Practitioner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	practitioner, ok := r.s.practitioners[practitionerID]
	if !ok {
		return nil, nil
	}
	return &practitioner, nil
}

func (r *practitionerRepository) FindBySecurityUserID(ctx context.Context, userID int64) (*models.Practitioner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, practitioner := range r.s.practitioners {
		if practitioner.SecurityUserID != nil && *practitioner.SecurityUserID == userID {
			found := practitioner
			return &found, nil
		}
	}
	return nil, nil
}

func (r *practitionerRepository) Exists(ctx context.Context, practitionerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.practitioners[practitionerID]
	return ok, nil
}

func (r *practitionerRepository) Create(ctx context.Context, practitioner *models.Practitioner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.linkTaken(practitioner.ID, practitioner.SecurityUserID) {
		return exceptions.ErrLinkedUserAlreadyPractitioner(nil)
	}
	practitioner.ID = r.s.nextID()
	r.s.practitioners[practitioner.ID] = *practitioner
	return nil
}

func (r *practitionerRepository) CreateForSecurityUser(ctx context.Context, practitioner *models.Practitioner) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.linkTaken(0, practitioner.SecurityUserID) {
		return false, nil
	}
	practitioner.ID = r.s.nextID()
	r.s.practitioners[practitioner.ID] = *practitioner
	return true, nil
}

func (r *practitionerRepository) Update(ctx context.Context, practitioner *models.Practitioner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.linkTaken(practitioner.ID, practitioner.SecurityUserID) {
		return exceptions.ErrLinkedUserAlreadyPractitioner(nil)
	}
	r.s.practitioners[practitioner.ID] = *practitioner
	return nil
}

func (r *practitionerRepository) UpdateNameEmail(ctx context.Context, practitionerID int64, name, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	practitioner, ok := r.s.practitioners[practitionerID]
	if !ok {
		return nil
	}
	practitioner.Name = name
	practitioner.Email = email
	r.s.practitioners[practitionerID] = practitioner
	return nil
}

func (r *practitionerRepository) Delete(ctx context.Context, practitionerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.deleteLocked(practitionerID), nil
}

func (r *practitionerRepository) DeleteBySecurityUserID(ctx context.Context, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, practitioner := range r.s.practitioners {
		if practitioner.SecurityUserID != nil && *practitioner.SecurityUserID == userID {
			return r.deleteLocked(id), nil
		}
	}
	return false, nil
}

func (r *practitionerRepository) linkTaken(selfID int64, userID *int64) bool {
	if userID == nil {
		return false
	}
	for id, practitioner := range r.s.practitioners {
		if id != selfID && practitioner.SecurityUserID != nil && *practitioner.SecurityUserID == *userID {
			return true
		}
	}
	return false
}

func (r *practitionerRepository) deleteLocked(practitionerID int64) bool {
	if _, ok := r.s.practitioners[practitionerID]; !ok {
		return false
	}
	delete(r.s.practitioners, practitionerID)
	for id, appointment := range r.s.appointments {
		if appointment.PractitionerID != nil && *appointment.PractitionerID == practitionerID {
			appointment.PractitionerID = nil
			r.s.appointments[id] = appointment
		}
	}
	for id, availability := range r.s.availabilities {
		if availability.PractitionerID == practitionerID {
			delete(r.s.availabilities, id)
		}
	}
	return true
}

type appointmentRepository struct{ s *Store }

func (s *Store) Appointments() contracts.AppointmentRepository {
	return &appointmentRepository{s}
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter *requests.ListAppointments) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.s.appointments {
		if filter.PatientID != nil && appointment.PatientID != *filter.PatientID {
			continue
		}
		if filter.PractitionerID != nil && !sameInt64(appointment.PractitionerID, filter.PractitionerID) {
			continue
		}
		if filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		result = append(result, appointment)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ScheduledAt.Before(result[j].ScheduledAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, appointmentID int64) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appointment, ok := r.s.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindSummariesByPatientID(ctx context.Context, patientID int64) ([]models.AppointmentSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.AppointmentSummary, 0)
	for _, appointment := range r.s.appointments {
		if appointment.PatientID != patientID {
			continue
		}
		summary := models.AppointmentSummary{
			ID:          appointment.ID,
			ScheduledAt: appointment.ScheduledAt,
			Status:      appointment.Status,
		}
		if appointment.PractitionerID != nil {
			if practitioner, ok := r.s.practitioners[*appointment.PractitionerID]; ok {
				name := practitioner.Name
				summary.PractitionerName = &name
			}
		}
		result = append(result, summary)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ScheduledAt.After(result[j].ScheduledAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, appointmentID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appointment, ok := r.s.appointments[appointmentID]
	if !ok || appointment.Status == "cancelled" {
		return false, nil
	}
	appointment.Status = "cancelled"
	r.s.appointments[appointmentID] = appointment
	return true, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, appointmentID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[appointmentID]; !ok {
		return false, nil
	}
	delete(r.s.appointments, appointmentID)
	return true, nil
}

// WithScheduleLock serializes every scheduling transaction and restores the
// appointments table when fn fails.
func (r *appointmentRepository) WithScheduleLock(ctx context.Context, patientID int64, practitionerID *int64, fn func(store contracts.AppointmentScheduleStore) error) error {
	r.s.scheduleMu.Lock()
	defer r.s.scheduleMu.Unlock()

	r.s.mu.Lock()
	snapshot := make(map[int64]models.Appointment, len(r.s.appointments))
	for id, appointment := range r.s.appointments {
		snapshot[id] = appointment
	}
	r.s.mu.Unlock()

	err := fn(&scheduleStore{s: r.s})
	if err != nil {
		r.s.mu.Lock()
		r.s.appointments = snapshot
		r.s.mu.Unlock()
	}
	return err
}

type scheduleStore struct{ s *Store }

func (t *scheduleStore) ExistsActiveForPatient(ctx context.Context, patientID int64, from, to time.Time, excludeID int64) (bool, error) {
	return t.exists(func(appointment models.Appointment) bool {
		return appointment.PatientID == patientID
	}, from, to, excludeID), nil
}

func (t *scheduleStore) ExistsActiveForPractitioner(ctx context.Context, practitionerID int64, from, to time.Time, excludeID int64) (bool, error) {
	return t.exists(func(appointment models.Appointment) bool {
		return appointment.PractitionerID != nil && *appointment.PractitionerID == practitionerID
	}, from, to, excludeID), nil
}

func (t *scheduleStore) exists(match func(models.Appointment) bool, from, to time.Time, excludeID int64) bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, appointment := range t.s.appointments {
		if id == excludeID || appointment.Status == "cancelled" || !match(appointment) {
			continue
		}
		if !appointment.ScheduledAt.Before(from) && appointment.ScheduledAt.Before(to) {
			return true
		}
	}
	return false
}

func (t *scheduleStore) Create(ctx context.Context, appointment *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.checkReferences(appointment); err != nil {
		return err
	}
	appointment.ID = t.s.nextID()
	t.s.appointments[appointment.ID] = *appointment
	return nil
}

func (t *scheduleStore) Update(ctx context.Context, appointment *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.checkReferences(appointment); err != nil {
		return err
	}
	t.s.appointments[appointment.ID] = *appointment
	return nil
}

var errForeignKey = errors.New("foreign key violation")

func (t *scheduleStore) checkReferences(appointment *models.Appointment) error {
	if _, ok := t.s.patients[appointment.PatientID]; !ok {
		return errForeignKey
	}
	if appointment.PractitionerID != nil {
		if _, ok := t.s.practitioners[*appointment.PractitionerID]; !ok {
			return errForeignKey
		}
	}
	return nil
}

type availabilityRepository struct{ s *Store }

func (s *Store) Availabilities() contracts.AvailabilityRepository {
	return &availabilityRepository{s}
}

func (r *availabilityRepository) FindAll(ctx context.Context, filter *requests.ListAvailabilities) ([]models.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.Availability, 0)
	for _, availability := range r.s.availabilities {
		if filter.PractitionerID != nil && availability.PractitionerID != *filter.PractitionerID {
			continue
		}
		if filter.Status != "" && availability.Status != filter.Status {
			continue
		}
		result = append(result, availability)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AvailableAt.Equal(result[j].AvailableAt) {
			return result[i].AvailableAt.Before(result[j].AvailableAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, availabilityID int64) (*models.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	availability, ok := r.s.availabilities[availabilityID]
	if !ok {
		return nil, nil
	}
	return &availability, nil
}

func (r *availabilityRepository) Create(ctx context.Context, availability *models.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	availability.ID = r.s.nextID()
	r.s.availabilities[availability.ID] = *availability
	return nil
}

func (r *availabilityRepository) Update(ctx context.Context, availability *models.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.availabilities[availability.ID] = *availability
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, availabilityID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.availabilities[availabilityID]; !ok {
		return false, nil
	}
	delete(r.s.availabilities, availabilityID)
	return true, nil
}
