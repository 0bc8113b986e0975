package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type AuditController struct {
	Log          *zap.Logger
	AuditUsecase contracts.AuditUsecase
}

var (
	auditControllerInstance *AuditController
	onceAuditController     sync.Once
)

func NewAuditController(logger *zap.Logger, auditUsecase contracts.AuditUsecase) *AuditController {
	onceAuditController.Do(func() {
		instance := &AuditController{
			Log:          logger,
			AuditUsecase: auditUsecase,
		}
		auditControllerInstance = instance
	})
	return auditControllerInstance
}

func (ctrl *AuditController) ListAuditEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := buildAuditFilter(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	entries, err := ctrl.AuditUsecase.ListAuditEntries(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeList(w, constvars.ResourceNameAuditEntry, entries, len(entries))
}

// buildAuditFilter reads accion, usuario_id, fecha_desde and fecha_hasta.
func buildAuditFilter(r *http.Request) (*models.AuditFilter, error) {
	query := r.URL.Query()
	filter := &models.AuditFilter{Action: strings.TrimSpace(query.Get(constvars.URLQueryParamAction))}

	var err error
	filter.UserID, err = queryInt64(r, constvars.URLQueryParamUserID)
	if err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(query.Get(constvars.URLQueryParamDateFrom)); raw != "" {
		from, err := utils.ParseFilterDate(raw, false)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamDateFrom)
		}
		filter.From = &from
	}

	if raw := strings.TrimSpace(query.Get(constvars.URLQueryParamDateTo)); raw != "" {
		to, err := utils.ParseFilterDate(raw, true)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamDateTo)
		}
		filter.To = &to
	}
	return filter, nil
}
