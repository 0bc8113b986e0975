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

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

var (
	userControllerInstance *UserController
	onceUserController     sync.Once
)

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	onceUserController.Do(func() {
		instance := &UserController{
			Log:         logger,
			UserUsecase: userUsecase,
		}
		userControllerInstance = instance
	})
	return userControllerInstance
}

func (ctrl *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	query := &requests.ListQuery{Search: r.URL.Query().Get(constvars.URLQueryParamSearch)}
	users, err := ctrl.UserUsecase.ListUsers(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameUser, users, len(users))
}

func (ctrl *UserController) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := ctrl.UserUsecase.GetUserByID(ctx, userID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeRetrieved(w, constvars.ResourceNameUser, user)
}

func (ctrl *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	request, err := ctrl.bindCreateUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := ctrl.UserUsecase.CreateUser(ctx, request, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeCreated(w, constvars.ResourceNameUser, user)
}

func (ctrl *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request, err := ctrl.bindCreateUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, userID, request.ToPatch())
}

func (ctrl *UserController) PartialUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.PatchUser)
	err = decodeJSON(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizePatchUserRequest(request)

	err = validateRequest(request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.update(w, r, userID, request)
}

func (ctrl *UserController) update(w http.ResponseWriter, r *http.Request, userID int64, request *requests.PatchUser) {
	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := ctrl.UserUsecase.UpdateUser(ctx, userID, request, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeUpdated(w, constvars.ResourceNameUser, user)
}

func (ctrl *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.UserUsecase.DeleteUser(ctx, userID, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeDeleted(w, constvars.ResourceNameUser)
}

func (ctrl *UserController) ListReceptionists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	users, err := ctrl.UserUsecase.ListReceptionists(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithCount(w, constvars.StatusOK, constvars.ListReceptionistsSuccessMessage, len(users), users)
}

func (ctrl *UserController) CreateReceptionist(w http.ResponseWriter, r *http.Request) {
	request, err := ctrl.bindCreateUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := ctrl.UserUsecase.CreateReceptionist(ctx, request, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateReceptionistSuccessMessage, user)
}

func (ctrl *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.ChangePassword)
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

	ctx, cancel := requestContext(r)
	defer cancel()

	err = ctrl.UserUsecase.ChangePassword(ctx, userID, request, utils.GetSessionUserID(r.Context()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ChangePasswordSuccessMessage, nil)
}

func (ctrl *UserController) bindCreateUser(r *http.Request) (*requests.CreateUser, error) {
	request := new(requests.CreateUser)
	err := decodeJSON(r, request)
	if err != nil {
		return nil, err
	}

	utils.SanitizeCreateUserRequest(request)

	err = validateRequest(request)
	if err != nil {
		return nil, err
	}
	return request, nil
}
