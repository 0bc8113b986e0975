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

type PractitionerController struct {
	Log                 *zap.Logger
	PractitionerUsecase contracts.PractitionerUsecase
}

var (
	practitionerControllerInstance *PractitionerController
	oncePractitionerController     sync.Once
)

func NewPractitionerController(logger *zap.Logger, practitionerUsecase contracts.PractitionerUsecase) *PractitionerController {
	oncePractitionerController.Do(func() {
		instance := &PractitionerController{
			Log:                 logger,
			PractitionerUsecase: practitionerUsecase,
		}
		practitionerControllerInstance = instance
	})
	return practitionerControllerInstance
}

func (ctrl *PractitionerController) ListPractitioners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	query := &requests.ListQuery{Search: r.URL.Query().Get(constvars.URLQueryParamSearch)}
	practitioners, err := ctrl.PractitionerUsecase.ListPractitioners(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNamePractitioner, practitioners, len(practitioners))
}

func (ctrl *PractitionerController) GetPractitionerByID(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	practitioner, err := ctrl.PractitionerUsecase.GetPractitionerByID(ctx, practitionerID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNamePractitioner, practitioner)
}

func (ctrl *PractitionerController) CreatePractitioner(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreatePractitioner)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreatePractitionerRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	practitioner, err := ctrl.PractitionerUsecase.CreatePractitioner(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNamePractitioner, practitioner)
}

func (ctrl *PractitionerController) UpdatePractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreatePractitioner)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreatePractitionerRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, practitionerID, request.ToPatch())
}

func (ctrl *PractitionerController) PartialUpdatePractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchPractitioner)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchPractitionerRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, practitionerID, request)
}

func (ctrl *PractitionerController) update(w http.ResponseWriter, r *http.Request, practitionerID int64, request *requests.PatchPractitioner) {
	ctx, cancel := requestContext(r)
	defer cancel()

	practitioner, err := ctrl.PractitionerUsecase.UpdatePractitioner(ctx, practitionerID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNamePractitioner, practitioner)
}

func (ctrl *PractitionerController) DeletePractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.PractitionerUsecase.DeletePractitioner(ctx, practitionerID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNamePractitioner)
}
