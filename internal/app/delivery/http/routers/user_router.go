package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	authorize := guard(middlewares, constvars.ResourceUsers)

	router.With(authorize(constvars.ActionList)).Get("/", userController.ListUsers)
	router.With(authorize(constvars.ActionCreate)).Post("/", userController.CreateUser)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", userController.GetUserByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", userController.UpdateUser)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", userController.PartialUpdateUser)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", userController.DeleteUser)
	router.With(authorize(constvars.ActionReceptionists)).Get("/recepcionistas", userController.ListReceptionists)
	router.With(authorize(constvars.ActionCreateReceptionist)).Post("/crear_recepcionista", userController.CreateReceptionist)
	router.With(authorize(constvars.ActionChangePassword)).Post("/{id}/cambiar_contrasena", userController.ChangePassword)
}
