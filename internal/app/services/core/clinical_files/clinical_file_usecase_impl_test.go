package clinicalFiles

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clinicalFileFixture struct {
	store   *memstore.Store
	objects *memstore.ObjectStorage
	usecase *clinicalFileUsecase
	patient *models.Patient
}

func newClinicalFileFixture(t *testing.T) *clinicalFileFixture {
	store := memstore.New()
	objects := memstore.NewObjectStorage()
	cfg := &config.InternalConfig{}
	cfg.Minio.BucketName = "clinical-files"
	cfg.Minio.ClinicalFileMaxUploadSizeInMB = 1
	cfg.Minio.MinioPreSignedUrlObjectExpiryTimeInHours = 1

	patient := &models.Patient{Name: "Marta Diaz", Gender: "F"}
	require.NoError(t, store.Patients().Create(context.Background(), patient))

	return &clinicalFileFixture{
		store:   store,
		objects: objects,
		patient: patient,
		usecase: &clinicalFileUsecase{
			ClinicalFileRepository: store.ClinicalFiles(),
			PatientRepository:      store.Patients(),
			Storage:                objects,
			InternalConfig:         cfg,
			Log:                    zap.NewNop(),
		},
	}
}

func upload(patientID *int64, name, content string) *requests.UploadClinicalFile {
	documentType := "radiography"
	return &requests.UploadClinicalFile{
		PatientID:    patientID,
		DocumentType: &documentType,
		File:         strings.NewReader(content),
		FileSize:     int64(len(content)),
		ContentType:  "image/png",
		OriginalName: name,
	}
}

func statusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}

func TestCreateClinicalFileStoresObjectAndMetadata(t *testing.T) {
	f := newClinicalFileFixture(t)

	file, err := f.usecase.CreateClinicalFile(context.Background(), upload(&f.patient.ID, "xray.png", "png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "xray.png", file.FileName)
	assert.Equal(t, "radiography", file.DocumentType)
	assert.Equal(t, int64(9), file.Size)
	assert.False(t, file.AttachedAt.IsZero())
	assert.True(t, f.objects.Has(file.ObjectName))
	assert.NotEmpty(t, file.URL)
}

func TestCreateClinicalFileValidation(t *testing.T) {
	f := newClinicalFileFixture(t)
	ctx := context.Background()

	_, err := f.usecase.CreateClinicalFile(ctx, upload(nil, "a.png", "x"))
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	missingFile := upload(&f.patient.ID, "a.png", "x")
	missingFile.File = nil
	_, err = f.usecase.CreateClinicalFile(ctx, missingFile)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	unknown := int64(999)
	_, err = f.usecase.CreateClinicalFile(ctx, upload(&unknown, "a.png", "x"))
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	tooLarge := upload(&f.patient.ID, "big.png", "x")
	tooLarge.FileSize = 2 << 20
	_, err = f.usecase.CreateClinicalFile(ctx, tooLarge)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Empty(t, f.objects.Objects)
}

func TestUpdateClinicalFileReplacesObject(t *testing.T) {
	f := newClinicalFileFixture(t)
	ctx := context.Background()

	file, err := f.usecase.CreateClinicalFile(ctx, upload(&f.patient.ID, "xray.png", "v1"))
	require.NoError(t, err)
	oldObject := file.ObjectName

	description := "after treatment"
	replacement := upload(nil, "xray-2.png", "v2")
	replacement.Description = &description
	updated, err := f.usecase.UpdateClinicalFile(ctx, file.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, "after treatment", updated.Description)
	assert.NotEqual(t, oldObject, updated.ObjectName)
	assert.False(t, f.objects.Has(oldObject))
	assert.True(t, f.objects.Has(updated.ObjectName))
}

func TestListClinicalFilesNewestFirstAndSearch(t *testing.T) {
	f := newClinicalFileFixture(t)
	ctx := context.Background()

	first, err := f.usecase.CreateClinicalFile(ctx, upload(&f.patient.ID, "consent.pdf", "a"))
	require.NoError(t, err)
	second, err := f.usecase.CreateClinicalFile(ctx, upload(&f.patient.ID, "xray.png", "b"))
	require.NoError(t, err)

	files, err := f.usecase.ListClinicalFiles(ctx, &requests.ListQuery{PatientID: &f.patient.ID})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, second.ID, files[0].ID)
	assert.Equal(t, first.ID, files[1].ID)

	files, err = f.usecase.ListClinicalFiles(ctx, &requests.ListQuery{Search: "CONSENT"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, first.ID, files[0].ID)
}

func TestDeleteClinicalFile(t *testing.T) {
	f := newClinicalFileFixture(t)
	ctx := context.Background()

	file, err := f.usecase.CreateClinicalFile(ctx, upload(&f.patient.ID, "xray.png", "v1"))
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeleteClinicalFile(ctx, file.ID))
	assert.False(t, f.objects.Has(file.ObjectName))

	err = f.usecase.DeleteClinicalFile(ctx, file.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
