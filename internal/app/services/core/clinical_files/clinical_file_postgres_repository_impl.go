package clinicalFiles

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

type clinicalFilePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	clinicalFilePostgresRepositoryInstance contracts.ClinicalFileRepository
	onceClinicalFilePostgresRepository     sync.Once
)

func NewClinicalFilePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ClinicalFileRepository {
	onceClinicalFilePostgresRepository.Do(func() {
		instance := &clinicalFilePostgresRepository{
			DB:  db,
			Log: logger,
		}
		clinicalFilePostgresRepositoryInstance = instance
	})
	return clinicalFilePostgresRepositoryInstance
}

func (r *clinicalFilePostgresRepository) FindAll(ctx context.Context, patientID *int64, search string) ([]models.ClinicalFile, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindClinicalFilesQuery, patientID, search)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	files := make([]models.ClinicalFile, 0)
	for rows.Next() {
		var model models.ClinicalFile
		if err := scanClinicalFile(rows, &model); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		files = append(files, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return files, nil
}

func (r *clinicalFilePostgresRepository) FindByID(ctx context.Context, fileID int64) (*models.ClinicalFile, error) {
	var file models.ClinicalFile
	err := scanClinicalFile(r.DB.QueryRowContext(ctx, queries.FindClinicalFileByIDQuery, fileID), &file)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &file, nil
}

func (r *clinicalFilePostgresRepository) FindObjectNamesByPatientID(ctx context.Context, patientID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindClinicalFileObjectNamesByPatientIDQuery, patientID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return names, nil
}

func (r *clinicalFilePostgresRepository) Create(ctx context.Context, file *models.ClinicalFile) error {
	err := r.DB.QueryRowContext(ctx, queries.CreateClinicalFileQuery,
		file.PatientID, file.FileName, file.DocumentType, file.Description, file.ObjectName, file.ContentType, file.Size,
	).Scan(&file.ID, &file.AttachedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *clinicalFilePostgresRepository) Update(ctx context.Context, file *models.ClinicalFile) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateClinicalFileQuery,
		file.PatientID, file.FileName, file.DocumentType, file.Description, file.ObjectName, file.ContentType, file.Size, file.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *clinicalFilePostgresRepository) Delete(ctx context.Context, fileID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteClinicalFileQuery, fileID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClinicalFile(row rowScanner, file *models.ClinicalFile) error {
	return row.Scan(
		&file.ID, &file.PatientID, &file.FileName, &file.DocumentType, &file.Description,
		&file.ObjectName, &file.ContentType, &file.Size, &file.AttachedAt,
	)
}
