package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachRoleRoutes(router chi.Router, middlewares *middlewares.Middlewares, roleController *controllers.RoleController) {
	authorize := guard(middlewares, constvars.ResourceRoles)

	router.With(authorize(constvars.ActionList)).Get("/", roleController.ListRoles)
	router.With(authorize(constvars.ActionCreate)).Post("/", roleController.CreateRole)
	router.With(authorize(constvars.ActionRetrieve)).Get("/{id}", roleController.GetRoleByID)
	router.With(authorize(constvars.ActionUpdate)).Put("/{id}", roleController.UpdateRole)
	router.With(authorize(constvars.ActionPartialUpdate)).Patch("/{id}", roleController.PartialUpdateRole)
	router.With(authorize(constvars.ActionDelete)).Delete("/{id}", roleController.DeleteRole)
}
