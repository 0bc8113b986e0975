package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, query *requests.ListQuery) ([]models.Patient, error)
	GetPatientByID(ctx context.Context, patientID int64) (*models.Patient, error)
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID int64, request *requests.PatchPatient) (*models.Patient, error)
	DeletePatient(ctx context.Context, patientID int64) error
	GetPatientHistory(ctx context.Context, patientID int64) (*responses.PatientHistory, error)
}

type PatientRepository interface {
	FindAll(ctx context.Context, search string) ([]models.Patient, error)
	FindByID(ctx context.Context, patientID int64) (*models.Patient, error)
	Exists(ctx context.Context, patientID int64) (bool, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, patientID int64) (deleted bool, err error)
}
