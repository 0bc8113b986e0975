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

type ClinicalRecordController struct {
	Log                   *zap.Logger
	ClinicalRecordUsecase contracts.ClinicalRecordUsecase
}

var (
	clinicalRecordControllerInstance *ClinicalRecordController
	onceClinicalRecordController     sync.Once
)

func NewClinicalRecordController(logger *zap.Logger, clinicalRecordUsecase contracts.ClinicalRecordUsecase) *ClinicalRecordController {
	onceClinicalRecordController.Do(func() {
		instance := &ClinicalRecordController{
			Log:                   logger,
			ClinicalRecordUsecase: clinicalRecordUsecase,
		}
		clinicalRecordControllerInstance = instance
	})
	return clinicalRecordControllerInstance
}

func (ctrl *ClinicalRecordController) ListClinicalRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, constvars.URLQueryParamPatientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	records, err := ctrl.ClinicalRecordUsecase.ListClinicalRecords(ctx, patientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameClinicalRecord, records, len(records))
}

func (ctrl *ClinicalRecordController) GetClinicalRecordByID(w http.ResponseWriter, r *http.Request) {
	recordID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	record, err := ctrl.ClinicalRecordUsecase.GetClinicalRecordByID(ctx, recordID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameClinicalRecord, record)
}

func (ctrl *ClinicalRecordController) CreateClinicalRecord(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateClinicalRecord)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateClinicalRecordRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	record, err := ctrl.ClinicalRecordUsecase.CreateClinicalRecord(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameClinicalRecord, record)
}

func (ctrl *ClinicalRecordController) UpdateClinicalRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateClinicalRecord)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateClinicalRecordRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, recordID, request.ToPatch())
}

func (ctrl *ClinicalRecordController) PartialUpdateClinicalRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchClinicalRecord)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchClinicalRecordRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, recordID, request)
}

func (ctrl *ClinicalRecordController) update(w http.ResponseWriter, r *http.Request, recordID int64, request *requests.PatchClinicalRecord) {
	ctx, cancel := requestContext(r)
	defer cancel()

	record, err := ctrl.ClinicalRecordUsecase.UpdateClinicalRecord(ctx, recordID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameClinicalRecord, record)
}

func (ctrl *ClinicalRecordController) DeleteClinicalRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.ClinicalRecordUsecase.DeleteClinicalRecord(ctx, recordID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameClinicalRecord)
}
