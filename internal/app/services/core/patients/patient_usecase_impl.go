package patients

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/storage"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository      contracts.PatientRepository
	AppointmentRepository  contracts.AppointmentRepository
	ClinicalFileRepository contracts.ClinicalFileRepository
	Storage                contracts.Storage
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	appointmentRepository contracts.AppointmentRepository,
	clinicalFileRepository contracts.ClinicalFileRepository,
	storageService contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		instance := &patientUsecase{
			PatientRepository:      patientRepository,
			AppointmentRepository:  appointmentRepository,
			ClinicalFileRepository: clinicalFileRepository,
			Storage:                storageService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		patientUsecaseInstance = instance
	})
	return patientUsecaseInstance
}

func (uc *patientUsecase) ListPatients(ctx context.Context, query *requests.ListQuery) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patients, err := uc.PatientRepository.FindAll(ctx, query.Search)
	if err != nil {
		uc.Log.Error("patientUsecase.ListPatients error fetching patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.ListPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(patients)),
	)
	return patients, nil
}

func (uc *patientUsecase) GetPatientByID(ctx context.Context, patientID int64) (*models.Patient, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNamePatient)
	}
	return patient, nil
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient := &models.Patient{}
	err := applyPatientPatch(patient, request.ToPatch())
	if err != nil {
		return nil, err
	}

	err = uc.PatientRepository.Create(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID int64, request *requests.PatchPatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	err = applyPatientPatch(patient, request)
	if err != nil {
		return nil, err
	}

	err = uc.PatientRepository.Update(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes the patient with everything hanging off it. Stored
// file objects are cleaned up afterwards and only logged on failure.
func (uc *patientUsecase) DeletePatient(ctx context.Context, patientID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patientID),
	)

	objectNames, err := uc.ClinicalFileRepository.FindObjectNamesByPatientID(ctx, patientID)
	if err != nil {
		return err
	}

	deleted, err := uc.PatientRepository.Delete(ctx, patientID)
	if err != nil {
		uc.Log.Error("patientUsecase.DeletePatient error deleting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNamePatient)
	}

	for _, objectName := range objectNames {
		objectName := objectName
		utils.BestEffort(ctx, uc.Log, "patientUsecase.DeletePatient remove clinical file object", func(ctx context.Context) error {
			return uc.Storage.RemoveObject(ctx, uc.InternalConfig.Minio.BucketName, objectName)
		})
	}

	uc.Log.Info("patientUsecase.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingCountKey, len(objectNames)),
	)
	return nil
}

func (uc *patientUsecase) GetPatientHistory(ctx context.Context, patientID int64) (*responses.PatientHistory, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatientHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindSummariesByPatientID(ctx, patientID)
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatientHistory error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	files, err := uc.ClinicalFileRepository.FindAll(ctx, &patientID, "")
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatientHistory error fetching clinical files",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	storage.AttachClinicalFileURLs(ctx, uc.Storage, uc.Log, uc.InternalConfig.Minio.BucketName, expiry, files)

	return &responses.PatientHistory{
		Patient:      patient,
		Appointments: appointments,
		Files:        files,
	}, nil
}

func applyPatientPatch(patient *models.Patient, patch *requests.PatchPatient) error {
	if patch.Name != nil {
		patient.Name = *patch.Name
	}
	if patch.BirthDate != nil {
		if *patch.BirthDate == "" {
			patient.BirthDate = nil
		} else {
			birthDate, err := models.ParseDate(*patch.BirthDate)
			if err != nil {
				return exceptions.ErrInvalidFormat(err, "birthDate")
			}
			patient.BirthDate = &birthDate
		}
	}
	if patch.Gender != nil {
		patient.Gender = *patch.Gender
	}
	if patch.Phone != nil {
		patient.Phone = *patch.Phone
	}
	if patch.Address != nil {
		patient.Address = *patch.Address
	}
	if patch.Email != nil {
		patient.Email = *patch.Email
	}
	return nil
}
