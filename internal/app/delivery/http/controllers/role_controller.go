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

type RoleController struct {
	Log         *zap.Logger
	RoleUsecase contracts.RoleUsecase
}

var (
	roleControllerInstance *RoleController
	onceRoleController     sync.Once
)

func NewRoleController(logger *zap.Logger, roleUsecase contracts.RoleUsecase) *RoleController {
	onceRoleController.Do(func() {
		instance := &RoleController{
			Log:         logger,
			RoleUsecase: roleUsecase,
		}
		roleControllerInstance = instance
	})
	return roleControllerInstance
}

func (ctrl *RoleController) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	roles, err := ctrl.RoleUsecase.ListRoles(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameRole, roles, len(roles))
}

func (ctrl *RoleController) GetRoleByID(w http.ResponseWriter, r *http.Request) {
	roleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	role, err := ctrl.RoleUsecase.GetRoleByID(ctx, roleID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameRole, role)
}

func (ctrl *RoleController) CreateRole(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateRole)
	err := decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateRoleRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	role, err := ctrl.RoleUsecase.CreateRole(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameRole, role)
}

func (ctrl *RoleController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateRole)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateRoleRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, roleID, request.ToPatch())
}

func (ctrl *RoleController) PartialUpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchRole)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchRoleRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, roleID, request)
}

func (ctrl *RoleController) update(w http.ResponseWriter, r *http.Request, roleID int64, request *requests.PatchRole) {
	ctx, cancel := requestContext(r)
	defer cancel()

	role, err := ctrl.RoleUsecase.UpdateRole(ctx, roleID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameRole, role)
}

func (ctrl *RoleController) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.RoleUsecase.DeleteRole(ctx, roleID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameRole)
}
