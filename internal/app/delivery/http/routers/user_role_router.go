package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachUserRoleRoutes(router chi.Router, middlewares *middlewares.Middlewares, userRoleController *controllers.UserRoleController) {
	authorize := guard(middlewares, constvars.ResourceUserRoles)

	router.With(authorize(constvars.ActionList)).Get("/", userRoleController.ListUserRoles)
	router.With(authorize(constvars.ActionCreate)).Post("/", userRoleController.CreateUserRole)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", userRoleController.GetUserRoleByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", userRoleController.UpdateUserRole)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", userRoleController.PartialUpdateUserRole)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", userRoleController.DeleteUserRole)
}
