package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	authorize := guard(middlewares, constvars.ResourcePatients)

	router.With(authorize(constvars.ActionList)).Get("/", patientController.ListPatients)
	router.With(authorize(constvars.ActionCreate)).Post("/", patientController.CreatePatient)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", patientController.GetPatientByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", patientController.UpdatePatient)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", patientController.PartialUpdatePatient)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", patientController.DeletePatient)
	router.With(authorize(constvars.ActionHistory)).Get("/{id}/historial", patientController.GetPatientHistory)
}
