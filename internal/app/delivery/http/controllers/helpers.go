package controllers

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func validateRequest(request interface{}) error {
	err := utils.ValidateStruct(request)
	if err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	utils.BuildErrorResponse(log, w, err)
}

func writeList(w http.ResponseWriter, resourceName string, items interface{}, count int) {
	utils.BuildSuccessResponseWithCount(w, constvars.StatusOK, fmt.Sprintf(constvars.ListSuccessMessage, resourceName), count, items)
}

func writeRetrieved(w http.ResponseWriter, resourceName string, item interface{}) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.GetSuccessMessage, resourceName), item)
}

func writeCreated(w http.ResponseWriter, resourceName string, item interface{}) {
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessMessage, resourceName), item)
}

func writeUpdated(w http.ResponseWriter, resourceName string, item interface{}) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessMessage, resourceName), item)
}

func writeDeleted(w http.ResponseWriter, resourceName string) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessMessage, resourceName), nil)
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	return utils.ParseOptionalInt64(r.URL.Query().Get(key), key)
}
