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

type UserRoleController struct {
	Log             *zap.Logger
	UserRoleUsecase contracts.UserRoleUsecase
}

var (
	userRoleControllerInstance *UserRoleController
	onceUserRoleController     sync.Once
)

func NewUserRoleController(logger *zap.Logger, userRoleUsecase contracts.UserRoleUsecase) *UserRoleController {
	onceUserRoleController.Do(func() {
		instance := &UserRoleController{
			Log:             logger,
			UserRoleUsecase: userRoleUsecase,
		}
		userRoleControllerInstance = instance
	})
	return userRoleControllerInstance
}

func (ctrl *UserRoleController) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, constvars.URLQueryParamUserIDFilter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	userRoles, err := ctrl.UserRoleUsecase.ListUserRoles(ctx, userID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameUserRole, userRoles, len(userRoles))
}

func (ctrl *UserRoleController) GetUserRoleByID(w http.ResponseWriter, r *http.Request) {
	userRoleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	userRole, err := ctrl.UserRoleUsecase.GetUserRoleByID(ctx, userRoleID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameUserRole, userRole)
}

func (ctrl *UserRoleController) CreateUserRole(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateUserRole)
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

	ctx, cancel := requestContext(r)
	defer cancel()

	userRole, err := ctrl.UserRoleUsecase.CreateUserRole(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameUserRole, userRole)
}

func (ctrl *UserRoleController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userRoleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateUserRole)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, userRoleID, request.ToPatch())
}

func (ctrl *UserRoleController) PartialUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userRoleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchUserRole)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, userRoleID, request)
}

func (ctrl *UserRoleController) update(w http.ResponseWriter, r *http.Request, userRoleID int64, request *requests.PatchUserRole) {
	ctx, cancel := requestContext(r)
	defer cancel()

	userRole, err := ctrl.UserRoleUsecase.UpdateUserRole(ctx, userRoleID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameUserRole, userRole)
}

func (ctrl *UserRoleController) DeleteUserRole(w http.ResponseWriter, r *http.Request) {
	userRoleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.UserRoleUsecase.DeleteUserRole(ctx, userRoleID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameUserRole)
}
