package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type ClinicalFileUsecase interface {
	ListClinicalFiles(ctx context.Context, query *requests.ListQuery) ([]models.ClinicalFile, error)
	GetClinicalFileByID(ctx context.Context, fileID int64) (*models.ClinicalFile, error)
	CreateClinicalFile(ctx context.Context, request *requests.UploadClinicalFile) (*models.ClinicalFile, error)
	UpdateClinicalFile(ctx context.Context, fileID int64, request *requests.UploadClinicalFile) (*models.ClinicalFile, error)
	DeleteClinicalFile(ctx context.Context, fileID int64) error
}

type ClinicalFileRepository interface {
	FindAll(ctx context.Context, patientID *int64, search string) ([]models.ClinicalFile, error)
	FindByID(ctx context.Context, fileID int64) (*models.ClinicalFile, error)
	FindObjectNamesByPatientID(ctx context.Context, patientID int64) ([]string, error)
	Create(ctx context.Context, file *models.ClinicalFile) error
	Update(ctx context.Context, file *models.ClinicalFile) error
	Delete(ctx context.Context, fileID int64) (deleted bool, err error)
}
