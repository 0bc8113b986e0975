package clinicalRecords

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type clinicalRecordUsecase struct {
	ClinicalRecordRepository contracts.ClinicalRecordRepository
	PatientRepository        contracts.PatientRepository
	Log                      *zap.Logger
}

var (
	clinicalRecordUsecaseInstance contracts.ClinicalRecordUsecase
	onceClinicalRecordUsecase     sync.Once
)

func NewClinicalRecordUsecase(
	clinicalRecordRepository contracts.ClinicalRecordRepository,
	patientRepository contracts.PatientRepository,
	logger *zap.Logger,
) contracts.ClinicalRecordUsecase {
	onceClinicalRecordUsecase.Do(func() {
		instance := &clinicalRecordUsecase{
			ClinicalRecordRepository: clinicalRecordRepository,
			PatientRepository:        patientRepository,
			Log:                      logger,
		}
		clinicalRecordUsecaseInstance = instance
	})
	return clinicalRecordUsecaseInstance
}

func (uc *clinicalRecordUsecase) ListClinicalRecords(ctx context.Context, patientID *int64) ([]models.ClinicalRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicalRecordUsecase.ListClinicalRecords called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.ClinicalRecordRepository.FindAll(ctx, patientID)
}

func (uc *clinicalRecordUsecase) GetClinicalRecordByID(ctx context.Context, recordID int64) (*models.ClinicalRecord, error) {
	record, err := uc.ClinicalRecordRepository.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameClinicalRecord)
	}
	return record, nil
}

func (uc *clinicalRecordUsecase) CreateClinicalRecord(ctx context.Context, request *requests.CreateClinicalRecord) (*models.ClinicalRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicalRecordUsecase.CreateClinicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	record := &models.ClinicalRecord{AttendedAt: time.Now().UTC()}
	applyClinicalRecordPatch(record, request.ToPatch())

	err := uc.ensurePatientExists(ctx, record.PatientID)
	if err != nil {
		return nil, err
	}

	err = uc.ClinicalRecordRepository.Create(ctx, record)
	if err != nil {
		uc.Log.Error("clinicalRecordUsecase.CreateClinicalRecord error creating record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return record, nil
}

func (uc *clinicalRecordUsecase) UpdateClinicalRecord(ctx context.Context, recordID int64, request *requests.PatchClinicalRecord) (*models.ClinicalRecord, error) {
	record, err := uc.GetClinicalRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	applyClinicalRecordPatch(record, request)

	if request.PatientID != nil {
		err = uc.ensurePatientExists(ctx, record.PatientID)
		if err != nil {
			return nil, err
		}
	}

	err = uc.ClinicalRecordRepository.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *clinicalRecordUsecase) DeleteClinicalRecord(ctx context.Context, recordID int64) error {
	deleted, err := uc.ClinicalRecordRepository.Delete(ctx, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameClinicalRecord)
	}
	return nil
}

func (uc *clinicalRecordUsecase) ensurePatientExists(ctx context.Context, patientID int64) error {
	exists, err := uc.PatientRepository.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNamePatient)
	}
	return nil
}

func applyClinicalRecordPatch(record *models.ClinicalRecord, patch *requests.PatchClinicalRecord) {
	if patch.PatientID != nil {
		record.PatientID = *patch.PatientID
	}
	if patch.AttendedAt != nil {
		record.AttendedAt = *patch.AttendedAt
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.Diagnosis != nil {
		record.Diagnosis = *patch.Diagnosis
	}
}
