package clinicalFiles

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/storage"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type clinicalFileUsecase struct {
	ClinicalFileRepository contracts.ClinicalFileRepository
	PatientRepository      contracts.PatientRepository
	Storage                contracts.Storage
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	clinicalFileUsecaseInstance contracts.ClinicalFileUsecase
	onceClinicalFileUsecase     sync.Once
)

func NewClinicalFileUsecase(
	clinicalFileRepository contracts.ClinicalFileRepository,
	patientRepository contracts.PatientRepository,
	storageService contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClinicalFileUsecase {
	onceClinicalFileUsecase.Do(func() {
		instance := &clinicalFileUsecase{
			ClinicalFileRepository: clinicalFileRepository,
			PatientRepository:      patientRepository,
			Storage:                storageService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		clinicalFileUsecaseInstance = instance
	})
	return clinicalFileUsecaseInstance
}

func (uc *clinicalFileUsecase) ListClinicalFiles(ctx context.Context, query *requests.ListQuery) ([]models.ClinicalFile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicalFileUsecase.ListClinicalFiles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	files, err := uc.ClinicalFileRepository.FindAll(ctx, query.PatientID, query.Search)
	if err != nil {
		return nil, err
	}
	uc.attachURLs(ctx, files)
	return files, nil
}

func (uc *clinicalFileUsecase) GetClinicalFileByID(ctx context.Context, fileID int64) (*models.ClinicalFile, error) {
	file, err := uc.findClinicalFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return uc.withURL(ctx, file), nil
}

func (uc *clinicalFileUsecase) CreateClinicalFile(ctx context.Context, request *requests.UploadClinicalFile) (*models.ClinicalFile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicalFileUsecase.CreateClinicalFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.PatientID == nil {
		return nil, exceptions.ErrFieldRequired(nil, constvars.FormFieldPatientID)
	}
	if request.File == nil {
		return nil, exceptions.ErrFileRequired(nil)
	}

	err := uc.ensurePatientExists(ctx, *request.PatientID)
	if err != nil {
		return nil, err
	}

	file := &models.ClinicalFile{PatientID: *request.PatientID}
	applyClinicalFileText(file, request)

	err = uc.uploadContent(ctx, file, request)
	if err != nil {
		return nil, err
	}

	err = uc.ClinicalFileRepository.Create(ctx, file)
	if err != nil {
		uc.Log.Error("clinicalFileUsecase.CreateClinicalFile error saving metadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.removeObject(ctx, file.ObjectName)
		return nil, err
	}

	uc.Log.Info("clinicalFileUsecase.CreateClinicalFile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPatientIDKey, file.PatientID),
		zap.String(constvars.LoggingObjectNameKey, file.ObjectName),
	)
	return uc.withURL(ctx, file), nil
}

// UpdateClinicalFile replaces metadata and, when a new file part is sent, the
// stored bytes. The previous object is removed after the row is updated.
func (uc *clinicalFileUsecase) UpdateClinicalFile(ctx context.Context, fileID int64, request *requests.UploadClinicalFile) (*models.ClinicalFile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicalFileUsecase.UpdateClinicalFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	file, err := uc.findClinicalFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if request.PatientID != nil {
		err = uc.ensurePatientExists(ctx, *request.PatientID)
		if err != nil {
			return nil, err
		}
		file.PatientID = *request.PatientID
	}
	applyClinicalFileText(file, request)

	previousObject := ""
	if request.File != nil {
		previousObject = file.ObjectName
		err = uc.uploadContent(ctx, file, request)
		if err != nil {
			return nil, err
		}
	}

	err = uc.ClinicalFileRepository.Update(ctx, file)
	if err != nil {
		if previousObject != "" {
			uc.removeObject(ctx, file.ObjectName)
		}
		return nil, err
	}

	if previousObject != "" && previousObject != file.ObjectName {
		uc.removeObject(ctx, previousObject)
	}
	return uc.withURL(ctx, file), nil
}

func (uc *clinicalFileUsecase) DeleteClinicalFile(ctx context.Context, fileID int64) error {
	file, err := uc.findClinicalFile(ctx, fileID)
	if err != nil {
		return err
	}

	deleted, err := uc.ClinicalFileRepository.Delete(ctx, fileID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameClinicalFile)
	}

	uc.removeObject(ctx, file.ObjectName)
	return nil
}

func (uc *clinicalFileUsecase) uploadContent(ctx context.Context, file *models.ClinicalFile, request *requests.UploadClinicalFile) error {
	maxSizeInMB := uc.InternalConfig.Minio.ClinicalFileMaxUploadSizeInMB
	if maxSizeInMB > 0 && request.FileSize > int64(maxSizeInMB)<<20 {
		return exceptions.ErrFileTooLarge(nil, maxSizeInMB)
	}

	objectName := utils.GenerateClinicalFileObjectName(file.PatientID, request.OriginalName)
	objectName, err := uc.Storage.UploadFile(ctx, request.File, request.FileSize, request.ContentType, uc.InternalConfig.Minio.BucketName, objectName)
	if err != nil {
		return err
	}

	file.ObjectName = objectName
	file.ContentType = request.ContentType
	file.Size = request.FileSize
	if file.FileName == "" {
		file.FileName = request.OriginalName
	}
	return nil
}

func (uc *clinicalFileUsecase) findClinicalFile(ctx context.Context, fileID int64) (*models.ClinicalFile, error) {
	file, err := uc.ClinicalFileRepository.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameClinicalFile)
	}
	return file, nil
}

func (uc *clinicalFileUsecase) ensurePatientExists(ctx context.Context, patientID int64) error {
	exists, err := uc.PatientRepository.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNamePatient)
	}
	return nil
}

func (uc *clinicalFileUsecase) removeObject(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	utils.BestEffort(ctx, uc.Log, "clinicalFileUsecase remove object", func(ctx context.Context) error {
		return uc.Storage.RemoveObject(ctx, uc.InternalConfig.Minio.BucketName, objectName)
	})
}

func (uc *clinicalFileUsecase) attachURLs(ctx context.Context, files []models.ClinicalFile) {
	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	storage.AttachClinicalFileURLs(ctx, uc.Storage, uc.Log, uc.InternalConfig.Minio.BucketName, expiry, files)
}

func (uc *clinicalFileUsecase) withURL(ctx context.Context, file *models.ClinicalFile) *models.ClinicalFile {
	files := []models.ClinicalFile{*file}
	uc.attachURLs(ctx, files)
	return &files[0]
}

func applyClinicalFileText(file *models.ClinicalFile, request *requests.UploadClinicalFile) {
	if request.FileName != nil {
		file.FileName = *request.FileName
	}
	if request.DocumentType != nil {
		file.DocumentType = *request.DocumentType
	}
	if request.Description != nil {
		file.Description = *request.Description
	}
}
