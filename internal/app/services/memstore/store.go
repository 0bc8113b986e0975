// Package memstore holds in-memory implementations of the repository and
// infrastructure contracts. Usecase tests run against it in place of
// postgres, redis, minio and rabbitmq.
package memstore

import (
	"clinic-service/internal/app/models"
	"sync"
)

type Store struct {
	mu         sync.Mutex
	scheduleMu sync.Mutex
	seq        int64

	patients        map[int64]models.Patient
	clinicalRecords map[int64]models.ClinicalRecord
	clinicalFiles   map[int64]models.ClinicalFile
	practitioners   map[int64]models.Practitioner
	appointments    map[int64]models.Appointment
	availabilities  map[int64]models.Availability
	roles           map[int64]models.Role
	users           map[int64]models.User
	userRoles       map[int64]models.UserRole
	adminIdentities map[int64]models.AdminIdentity
	auditEntries    []models.AuditEntry
}

func New() *Store {
	return &Store{
		patients:        map[int64]models.Patient{},
		clinicalRecords: map[int64]models.ClinicalRecord{},
		clinicalFiles:   map[int64]models.ClinicalFile{},
		practitioners:   map[int64]models.Practitioner{},
		appointments:    map[int64]models.Appointment{},
		availabilities:  map[int64]models.Availability{},
		roles:           map[int64]models.Role{},
		users:           map[int64]models.User{},
		userRoles:       map[int64]models.UserRole{},
		adminIdentities: map[int64]models.AdminIdentity{},
	}
}

// nextID must be called with mu held.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func sameInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
