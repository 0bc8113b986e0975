package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPractitionerRoutes(router chi.Router, middlewares *middlewares.Middlewares, practitionerController *controllers.PractitionerController) {
	authorize := guard(middlewares, constvars.ResourcePractitioners)

	router.With(authorize(constvars.ActionList)).Get("/", practitionerController.ListPractitioners)
	router.With(authorize(constvars.ActionCreate)).Post("/", practitionerController.CreatePractitioner)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", practitionerController.GetPractitionerByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", practitionerController.UpdatePractitioner)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", practitionerController.PartialUpdatePractitioner)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", practitionerController.DeletePractitioner)
}
