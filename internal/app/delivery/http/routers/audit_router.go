package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAuditRoutes(router chi.Router, middlewares *middlewares.Middlewares, auditController *controllers.AuditController) {
	authorize := guard(middlewares, constvars.ResourceAudit)

	router.With(authorize(constvars.ActionList)).Get("/", auditController.ListAuditEntries)
}
