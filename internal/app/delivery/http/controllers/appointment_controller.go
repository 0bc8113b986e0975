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

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		instance := &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
		appointmentControllerInstance = instance
	})
	return appointmentControllerInstance
}

// RequestAppointment books an appointment after the conflict check. The
// acting user defaults to the signed-in user.
func (ctrl *AppointmentController) RequestAppointment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RequestAppointment)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	if request.ActingUserID == nil {
		request.ActingUserID = utils.GetSessionUserID(r.Context())
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.RequestAppointment(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RequestAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CancelAppointment(ctx, appointmentID, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	filter := &requests.ListAppointments{Status: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus))}

	var err error
	filter.PatientID, err = queryInt64(r, constvars.URLQueryParamPatientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	filter.PractitionerID, err = queryInt64(r, constvars.URLQueryParamPractitionerID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.ListAppointments(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameAppointment, appointments, len(appointments))
}

func (ctrl *AppointmentController) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameAppointment, appointment)
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateAppointment)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateAppointmentRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, request, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameAppointment, appointment)
}

func (ctrl *AppointmentController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAppointment)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateAppointmentRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, appointmentID, request.ToPatch())
}

func (ctrl *AppointmentController) PartialUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchAppointment)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchAppointmentRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, appointmentID, request)
}

func (ctrl *AppointmentController) update(w http.ResponseWriter, r *http.Request, appointmentID int64, request *requests.PatchAppointment) {
	ctx, cancel := requestContext(r)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateAppointment(ctx, appointmentID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameAppointment, appointment)
}

func (ctrl *AppointmentController) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.AppointmentUsecase.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameAppointment)
}
