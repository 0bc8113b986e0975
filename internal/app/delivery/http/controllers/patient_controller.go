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

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

var (
	patientControllerInstance *PatientController
	oncePatientController     sync.Once
)

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	oncePatientController.Do(func() {
		instance := &PatientController{
			Log:            logger,
			PatientUsecase: patientUsecase,
		}
		patientControllerInstance = instance
	})
	return patientControllerInstance
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	query := &requests.ListQuery{Search: r.URL.Query().Get(constvars.URLQueryParamSearch)}
	patients, err := ctrl.PatientUsecase.ListPatients(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNamePatient, patients, len(patients))
}

func (ctrl *PatientController) GetPatientByID(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	patient, err := ctrl.PatientUsecase.GetPatientByID(ctx, patientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNamePatient, patient)
}

func (ctrl *PatientController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreatePatient)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreatePatientRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	patient, err := ctrl.PatientUsecase.CreatePatient(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNamePatient, patient)
}

// UpdatePatient handles PUT. The body must be a complete patient.
func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreatePatient)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreatePatientRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, patientID, request.ToPatch())
}

func (ctrl *PatientController) PartialUpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchPatient)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchPatientRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, patientID, request)
}

func (ctrl *PatientController) update(w http.ResponseWriter, r *http.Request, patientID int64, request *requests.PatchPatient) {
	ctx, cancel := requestContext(r)
	defer cancel()

	patient, err := ctrl.PatientUsecase.UpdatePatient(ctx, patientID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNamePatient, patient)
}

func (ctrl *PatientController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.PatientUsecase.DeletePatient(ctx, patientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNamePatient)
}

func (ctrl *PatientController) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	history, err := ctrl.PatientUsecase.GetPatientHistory(ctx, patientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientHistorySuccessMessage, history)
}
