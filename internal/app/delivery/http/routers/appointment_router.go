package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	authorize := guard(middlewares, constvars.ResourceAppointments)

	router.With(authorize(constvars.ActionList)).Get("/", appointmentController.ListAppointments)
	router.With(authorize(constvars.ActionCreate)).Post("/", appointmentController.CreateAppointment)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", appointmentController.GetAppointmentByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", appointmentController.UpdateAppointment)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", appointmentController.PartialUpdateAppointment)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", appointmentController.DeleteAppointment)
	router.With(authorize(constvars.ActionRequest)).Post("/solicitar", appointmentController.RequestAppointment)
	router.With(authorize(constvars.ActionCancel)).Post("/{id}/cancelar", appointmentController.CancelAppointment)
}
