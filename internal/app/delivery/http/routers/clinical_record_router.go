package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachClinicalRecordRoutes(router chi.Router, middlewares *middlewares.Middlewares, clinicalRecordController *controllers.ClinicalRecordController) {
	authorize := guard(middlewares, constvars.ResourceClinicalRecords)

	router.With(authorize(constvars.ActionList)).Get("/", clinicalRecordController.ListClinicalRecords)
	router.With(authorize(constvars.ActionCreate)).Post("/", clinicalRecordController.CreateClinicalRecord)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", clinicalRecordController.GetClinicalRecordByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", clinicalRecordController.UpdateClinicalRecord)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", clinicalRecordController.PartialUpdateClinicalRecord)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", clinicalRecordController.DeleteClinicalRecord)
}
