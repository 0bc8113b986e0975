package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachClinicalFileRoutes(router chi.Router, middlewares *middlewares.Middlewares, clinicalFileController *controllers.ClinicalFileController) {
	authorize := guard(middlewares, constvars.ResourceClinicalFiles)

	router.With(authorize(constvars.ActionList)).Get("/", clinicalFileController.ListClinicalFiles)
	router.With(authorize(constvars.ActionCreate)).Post("/", clinicalFileController.CreateClinicalFile)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", clinicalFileController.GetClinicalFileByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", clinicalFileController.UpdateClinicalFile)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", clinicalFileController.UpdateClinicalFile)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", clinicalFileController.DeleteClinicalFile)
}
