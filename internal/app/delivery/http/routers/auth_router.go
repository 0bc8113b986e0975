package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	authorize := guard(middlewares, constvars.ResourceUsers)
	loginLimiter := middlewares.LoginRateLimiter()

	router.With(loginLimiter.Limit, authorize(constvars.ActionLogin)).Post("/login", authController.Login)
	router.With(authorize(constvars.ActionLogout)).Post("/logout", authController.Logout)
	router.With(authorize(constvars.ActionMe)).Get("/me", authController.Me)
}
