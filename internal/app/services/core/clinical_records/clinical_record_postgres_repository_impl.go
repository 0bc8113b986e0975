package clinicalRecords

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

type clinicalRecordPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	clinicalRecordPostgresRepositoryInstance contracts.ClinicalRecordRepository
	onceClinicalRecordPostgresRepository     sync.Once
)

func NewClinicalRecordPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ClinicalRecordRepository {
	onceClinicalRecordPostgresRepository.Do(func() {
		instance := &clinicalRecordPostgresRepository{
			DB:  db,
			Log: logger,
		}
		clinicalRecordPostgresRepositoryInstance = instance
	})
	return clinicalRecordPostgresRepositoryInstance
}

func (r *clinicalRecordPostgresRepository) FindAll(ctx context.Context, patientID *int64) ([]models.ClinicalRecord, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindClinicalRecordsQuery, patientID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	records := make([]models.ClinicalRecord, 0)
	for rows.Next() {
		var model models.ClinicalRecord
		if err := rows.Scan(&model.ID, &model.PatientID, &model.AttendedAt, &model.Description, &model.Diagnosis); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		records = append(records, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return records, nil
}

func (r *clinicalRecordPostgresRepository) FindByID(ctx context.Context, recordID int64) (*models.ClinicalRecord, error) {
	var record models.ClinicalRecord
	err := r.DB.QueryRowContext(ctx, queries.FindClinicalRecordByIDQuery, recordID).Scan(
		&record.ID, &record.PatientID, &record.AttendedAt, &record.Description, &record.Diagnosis,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &record, nil
}

func (r *clinicalRecordPostgresRepository) Create(ctx context.Context, record *models.ClinicalRecord) error {
	err := r.DB.QueryRowContext(ctx, queries.CreateClinicalRecordQuery,
		record.PatientID, record.AttendedAt, record.Description, record.Diagnosis,
	).Scan(&record.ID)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *clinicalRecordPostgresRepository) Update(ctx context.Context, record *models.ClinicalRecord) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateClinicalRecordQuery,
		record.PatientID, record.AttendedAt, record.Description, record.Diagnosis, record.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *clinicalRecordPostgresRepository) Delete(ctx context.Context, recordID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteClinicalRecordQuery, recordID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
