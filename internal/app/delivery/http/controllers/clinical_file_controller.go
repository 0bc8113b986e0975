package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type ClinicalFileController struct {
	Log                 *zap.Logger
	ClinicalFileUsecase contracts.ClinicalFileUsecase
}

var (
	clinicalFileControllerInstance *ClinicalFileController
	onceClinicalFileController     sync.Once
)

func NewClinicalFileController(logger *zap.Logger, clinicalFileUsecase contracts.ClinicalFileUsecase) *ClinicalFileController {
	onceClinicalFileController.Do(func() {
		instance := &ClinicalFileController{
			Log:                 logger,
			ClinicalFileUsecase: clinicalFileUsecase,
		}
		clinicalFileControllerInstance = instance
	})
	return clinicalFileControllerInstance
}

func (ctrl *ClinicalFileController) ListClinicalFiles(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, constvars.URLQueryParamPatientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	query := &requests.ListQuery{
		Search:    r.URL.Query().Get(constvars.URLQueryParamSearch),
		PatientID: patientID,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	files, err := ctrl.ClinicalFileUsecase.ListClinicalFiles(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameClinicalFile, files, len(files))
}

func (ctrl *ClinicalFileController) GetClinicalFileByID(w http.ResponseWriter, r *http.Request) {
	fileID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	file, err := ctrl.ClinicalFileUsecase.GetClinicalFileByID(ctx, fileID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameClinicalFile, file)
}

func (ctrl *ClinicalFileController) CreateClinicalFile(w http.ResponseWriter, r *http.Request) {
	request, closeFile, err := ctrl.bindUpload(r)
	defer closeFile()
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	file, err := ctrl.ClinicalFileUsecase.CreateClinicalFile(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameClinicalFile, file)
}

// UpdateClinicalFile serves both PUT and PATCH. Form fields that are absent
// keep their stored value and a new file part replaces the stored object.
func (ctrl *ClinicalFileController) UpdateClinicalFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request, closeFile, err := ctrl.bindUpload(r)
	defer closeFile()
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	file, err := ctrl.ClinicalFileUsecase.UpdateClinicalFile(ctx, fileID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameClinicalFile, file)
}

func (ctrl *ClinicalFileController) DeleteClinicalFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.ClinicalFileUsecase.DeleteClinicalFile(ctx, fileID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameClinicalFile)
}

func (ctrl *ClinicalFileController) bindUpload(r *http.Request) (*requests.UploadClinicalFile, func(), error) {
	request, closeFile, err := utils.BuildUploadClinicalFileRequest(r)
	if err != nil {
		return nil, closeFile, err
	}

	utils.SanitizeClinicalFileText(request.FileName, request.DocumentType, request.Description)

	err = validateRequest(request)
	if err != nil {
		return nil, closeFile, err
	}
	return request, closeFile, nil
}
