package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type ClinicalRecordUsecase interface {
	ListClinicalRecords(ctx context.Context, patientID *int64) ([]models.ClinicalRecord, error)
	GetClinicalRecordByID(ctx context.Context, recordID int64) (*models.ClinicalRecord, error)
	CreateClinicalRecord(ctx context.Context, request *requests.CreateClinicalRecord) (*models.ClinicalRecord, error)
	UpdateClinicalRecord(ctx context.Context, recordID int64, request *requests.PatchClinicalRecord) (*models.ClinicalRecord, error)
	DeleteClinicalRecord(ctx context.Context, recordID int64) error
}

type ClinicalRecordRepository interface {
	FindAll(ctx context.Context, patientID *int64) ([]models.ClinicalRecord, error)
	FindByID(ctx context.Context, recordID int64) (*models.ClinicalRecord, error)
	Create(ctx context.Context, record *models.ClinicalRecord) error
	Update(ctx context.Context, record *models.ClinicalRecord) error
	Delete(ctx context.Context, recordID int64) (deleted bool, err error)
}
