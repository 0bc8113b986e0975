package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

var (
	availabilityControllerInstance *AvailabilityController
	onceAvailabilityController     sync.Once
)

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	onceAvailabilityController.Do(func() {
		instance := &AvailabilityController{
			Log:                 logger,
			AvailabilityUsecase: availabilityUsecase,
		}
		availabilityControllerInstance = instance
	})
	return availabilityControllerInstance
}

func (ctrl *AvailabilityController) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := queryInt64(r, constvars.URLQueryParamPractitionerID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	filter := &requests.ListAvailabilities{
		PractitionerID: practitionerID,
		Status:         strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus)),
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	availabilities, err := ctrl.AvailabilityUsecase.ListAvailabilities(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameAvailability, availabilities, len(availabilities))
}

func (ctrl *AvailabilityController) GetAvailabilityByID(w http.ResponseWriter, r *http.Request) {
	availabilityID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.GetAvailabilityByID(ctx, availabilityID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameAvailability, availability)
}

func (ctrl *AvailabilityController) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateAvailability)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateAvailabilityRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.CreateAvailability(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameAvailability, availability)
}

func (ctrl *AvailabilityController) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	availabilityID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAvailability)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateAvailabilityRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, availabilityID, request.ToPatch())
}

func (ctrl *AvailabilityController) PartialUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	availabilityID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchAvailability)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchAvailabilityRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, availabilityID, request)
}

func (ctrl *AvailabilityController) update(w http.ResponseWriter, r *http.Request, availabilityID int64, request *requests.PatchAvailability) {
	ctx, cancel := requestContext(r)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.UpdateAvailability(ctx, availabilityID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameAvailability, availability)
}

func (ctrl *AvailabilityController) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	availabilityID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.AvailabilityUsecase.DeleteAvailability(ctx, availabilityID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameAvailability)
}
