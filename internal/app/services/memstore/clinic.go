package memstore

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"context"
	"sort"
	"strings"
	"time"
)

type patientRepository struct{ s *Store }

func (s *Store) Patients() contracts.PatientRepository { return &patientRepository{s} }

func (r *patientRepository) FindAll(ctx context.Context, search string) ([]models.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.Patient, 0)
	needle := strings.ToLower(search)
	for _, patient := range r.s.patients {
		if needle == "" || strings.Contains(strings.ToLower(patient.Name), needle) || strings.Contains(strings.ToLower(patient.Email), needle) {
			result = append(result, patient)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *patientRepository) FindByID(ctx context.Context, patientID int64) (*models.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	patient, ok := r.s.patients[patientID]
	if !ok {
		return nil, nil
	}
	return &patient, nil
}

func (r *patientRepository) Exists(ctx context.Context, patientID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.patients[patientID]
	return ok, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	patient.ID = r.s.nextID()
	patient.SetCreatedAtUpdatedAt()
	r.s.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[patient.ID]; !ok {
		return nil
	}
	patient.SetUpdatedAt()
	r.s.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, patientID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[patientID]; !ok {
		return false, nil
	}
	delete(r.s.patients, patientID)
	for id, appointment := range r.s.appointments {
		if appointment.PatientID == patientID {
			delete(r.s.appointments, id)
		}
	}
	for id, record := range r.s.clinicalRecords {
		if record.PatientID == patientID {
			delete(r.s.clinicalRecords, id)
		}
	}
	for id, file := range r.s.clinicalFiles {
		if file.PatientID == patientID {
			delete(r.s.clinicalFiles, id)
		}
	}
	return true, nil
}

type clinicalRecordRepository struct{ s *Store }

func (s *Store) ClinicalRecords() contracts.ClinicalRecordRepository {
	return &clinicalRecordRepository{s}
}

func (r *clinicalRecordRepository) FindAll(ctx context.Context, patientID *int64) ([]models.ClinicalRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]models.ClinicalRecord, 0)
	for _, record := range r.s.clinicalRecords {
		if patientID == nil || record.PatientID == *patientID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AttendedAt.Equal(result[j].AttendedAt) {
			return result[i].AttendedAt.After(result[j].AttendedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *clinicalRecordRepository) FindByID(ctx context.Context, recordID int64) (*models.ClinicalRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	record, ok := r.s.clinicalRecords[recordID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *clinicalRecordRepository) Create(ctx context.Context, record *models.ClinicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	record.ID = r.s.nextID()
	r.s.clinicalRecords[record.ID] = *record
	return nil
}

func (r *clinicalRecordRepository) Update(ctx context.Context, record *models.ClinicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clinicalRecords[record.ID] = *record
	return nil
}

func (r *clinicalRecordRepository) Delete(ctx context.Context, recordID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clinicalRecords[recordID]; !ok {
		return false, nil
	}
	delete(r.s.clinicalRecords, recordID)
	return true, nil
}

type clinicalFileRepository struct{ s *Store }

func (s *Store) ClinicalFiles() contracts.ClinicalFileRepository {
	return &clinicalFileRepository{s}
}

func (r *clinicalFileRepository) FindAll(ctx context.Context, patientID *int64, search string) ([]models.ClinicalFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(search)
	result := make([]models.ClinicalFile, 0)
	for _, file := range r.s.clinicalFiles {
		if patientID != nil && file.PatientID != *patientID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(file.FileName), needle) &&
			!strings.Contains(strings.ToLower(file.DocumentType), needle) &&
			!strings.Contains(strings.ToLower(file.Description), needle) {
			continue
		}
		result = append(result, file)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AttachedAt.Equal(result[j].AttachedAt) {
			return result[i].AttachedAt.After(result[j].AttachedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *clinicalFileRepository) FindByID(ctx context.Context, fileID int64) (*models.ClinicalFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	file, ok := r.s.clinicalFiles[fileID]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (r *clinicalFileRepository) FindObjectNamesByPatientID(ctx context.Context, patientID int64) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := make([]string, 0)
	for _, file := range r.s.clinicalFiles {
		if file.PatientID == patientID {
			names = append(names, file.ObjectName)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *clinicalFileRepository) Create(ctx context.Context, file *models.ClinicalFile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	file.ID = r.s.nextID()
	file.AttachedAt = time.Now()
	r.s.clinicalFiles[file.ID] = *file
	return nil
}

func (r *clinicalFileRepository) Update(ctx context.Context, file *models.ClinicalFile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *file
	stored.URL = ""
	r.s.clinicalFiles[file.ID] = stored
	return nil
}

func (r *clinicalFileRepository) Delete(ctx context.Context, fileID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clinicalFiles[fileID]; !ok {
		return false, nil
	}
	delete(r.s.clinicalFiles, fileID)
	return true, nil
}
