package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	authorize := guard(middlewares, constvars.ResourceAvailabilities)

	router.With(authorize(constvars.ActionList)).Get("/", availabilityController.ListAvailabilities)
	router.With(authorize(constvars.ActionCreate)).Post("/", availabilityController.CreateAvailability)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", availabilityController.GetAvailabilityByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", availabilityController.UpdateAvailability)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", availabilityController.PartialUpdateAvailability)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", availabilityController.DeleteAvailability)
}
