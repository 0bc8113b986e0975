package patients

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

type patientPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	patientPostgresRepositoryInstance contracts.PatientRepository
	oncePatientPostgresRepository     sync.Once
)

func NewPatientPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PatientRepository {
	oncePatientPostgresRepository.Do(func() {
		instance := &patientPostgresRepository{
			DB:  db,
			Log: logger,
		}
		patientPostgresRepositoryInstance = instance
	})
	return patientPostgresRepositoryInstance
}

func (r *patientPostgresRepository) FindAll(ctx context.Context, search string) ([]models.Patient, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindPatientsQuery, search)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		var model models.Patient
		if err := rows.Scan(
			&model.ID, &model.Name, &model.BirthDate, &model.Gender, &model.Phone,
			&model.Address, &model.Email, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		patients = append(patients, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return patients, nil
}

func (r *patientPostgresRepository) FindByID(ctx context.Context, patientID int64) (*models.Patient, error) {
	var patient models.Patient
	err := r.DB.QueryRowContext(ctx, queries.FindPatientByIDQuery, patientID).Scan(
		&patient.ID, &patient.Name, &patient.BirthDate, &patient.Gender, &patient.Phone,
		&patient.Address, &patient.Email, &patient.CreatedAt, &patient.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &patient, nil
}

func (r *patientPostgresRepository) Exists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, queries.ExistsPatientQuery, patientID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (r *patientPostgresRepository) Create(ctx context.Context, patient *models.Patient) error {
	err := r.DB.QueryRowContext(ctx, queries.CreatePatientQuery,
		patient.Name, patient.BirthDate, patient.Gender, patient.Phone, patient.Address, patient.Email,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		r.Log.Error("patientPostgresRepository.Create error inserting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *patientPostgresRepository) Update(ctx context.Context, patient *models.Patient) error {
	err := r.DB.QueryRowContext(ctx, queries.UpdatePatientQuery,
		patient.Name, patient.BirthDate, patient.Gender, patient.Phone, patient.Address, patient.Email, patient.ID,
	).Scan(&patient.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Delete removes the patient; appointments, clinical records and clinical
// files go with it through ON DELETE CASCADE.
func (r *patientPostgresRepository) Delete(ctx context.Context, patientID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeletePatientQuery, patientID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
