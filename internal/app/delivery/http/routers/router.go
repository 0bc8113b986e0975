package routers

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Patient        *controllers.PatientController
	ClinicalRecord *controllers.ClinicalRecordController
	ClinicalFile   *controllers.ClinicalFileController
	Practitioner   *controllers.PractitionerController
	Availability   *controllers.AvailabilityController
	Appointment    *controllers.AppointmentController
	Role           *controllers.RoleController
	UserRole       *controllers.UserRoleController
	User           *controllers.UserController
	Auth           *controllers.AuthController
	Audit          *controllers.AuditController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	controllers *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.AllowedOrigins,
		AllowedMethods: []string{
			constvars.MethodGet,
			constvars.MethodPost,
			constvars.MethodPut,
			constvars.MethodPatch,
			constvars.MethodDelete,
			constvars.MethodOptions,
		},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXCSRFToken,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimiter())
	router.Use(middlewares.SessionOptional)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			attachRoutes(r, middlewares, controllers)
		})
	})
}

func attachRoutes(r chi.Router, middlewares *middlewares.Middlewares, controllers *Controllers) {
	r.Route("/patients", func(r chi.Router) {
		attachPatientRoutes(r, middlewares, controllers.Patient)
	})

	r.Route("/clinical-records", func(r chi.Router) {
		attachClinicalRecordRoutes(r, middlewares, controllers.ClinicalRecord)
	})

	r.Route("/clinical-files", func(r chi.Router) {
		attachClinicalFileRoutes(r, middlewares, controllers.ClinicalFile)
	})

	r.Route("/practitioners", func(r chi.Router) {
		attachPractitionerRoutes(r, middlewares, controllers.Practitioner)
	})

	r.Route("/availabilities", func(r chi.Router) {
		attachAvailabilityRoutes(r, middlewares, controllers.Availability)
	})

	r.Route("/appointments", func(r chi.Router) {
		attachAppointmentRoutes(r, middlewares, controllers.Appointment)
	})

	r.Route("/roles", func(r chi.Router) {
		attachRoleRoutes(r, middlewares, controllers.Role)
	})

	r.Route("/user-roles", func(r chi.Router) {
		attachUserRoleRoutes(r, middlewares, controllers.UserRole)
	})

	r.Route("/users", func(r chi.Router) {
		attachAuthRoutes(r, middlewares, controllers.Auth)
		attachUserRoutes(r, middlewares, controllers.User)
	})

	r.Route("/audit", func(r chi.Router) {
		attachAuditRoutes(r, middlewares, controllers.Audit)
	})
}

// guard binds the role gate to one resource.
func guard(middlewares *middlewares.Middlewares, resource string) func(action string) func(next http.Handler) http.Handler {
	return func(action string) func(next http.Handler) http.Handler {
		return middlewares.Authorize(resource, action)
	}
}
