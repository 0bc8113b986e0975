package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/app/delivery/http/routers"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/internal/app/drivers/messaging"
	"clinic-service/internal/app/drivers/storage"
	adminIdentities "clinic-service/internal/app/services/core/admin_identities"
	"clinic-service/internal/app/services/core/appointments"
	"clinic-service/internal/app/services/core/audit"
	"clinic-service/internal/app/services/core/auth"
	"clinic-service/internal/app/services/core/availabilities"
	clinicalFiles "clinic-service/internal/app/services/core/clinical_files"
	clinicalRecords "clinic-service/internal/app/services/core/clinical_records"
	"clinic-service/internal/app/services/core/patients"
	"clinic-service/internal/app/services/core/practitioners"
	"clinic-service/internal/app/services/core/roles"
	"clinic-service/internal/app/services/core/session"
	"clinic-service/internal/app/services/core/synchronizer"
	userRoles "clinic-service/internal/app/services/core/user_roles"
	"clinic-service/internal/app/services/core/users"
	"clinic-service/internal/app/services/shared/notification"
	"clinic-service/internal/app/services/shared/redis"
	storageService "clinic-service/internal/app/services/shared/storage"
	"clinic-service/internal/pkg/constvars"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     database.NewPostgresDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.Audit.Store == constvars.AuditStoreMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}
	messaging.DeclareQueue(bootstrap.RabbitMQ, internalConfig.RabbitMQ.AppointmentQueue)

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server is starting", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	db := bootstrap.PostgresDB
	logger := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Repositories
	patientRepository := patients.NewPatientPostgresRepository(db, logger)
	clinicalRecordRepository := clinicalRecords.NewClinicalRecordPostgresRepository(db, logger)
	clinicalFileRepository := clinicalFiles.NewClinicalFilePostgresRepository(db, logger)
	practitionerRepository := practitioners.NewPractitionerPostgresRepository(db, logger)
	availabilityRepository := availabilities.NewAvailabilityPostgresRepository(db, logger)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(db, logger)
	roleRepository := roles.NewRolePostgresRepository(db, logger)
	userRepository := users.NewUserPostgresRepository(db, logger)
	userRoleRepository := userRoles.NewUserRolePostgresRepository(db, logger)
	adminIdentityRepository := adminIdentities.NewAdminIdentityPostgresRepository(db, logger)

	var auditRepository contracts.AuditRepository
	switch internalConfig.Audit.Store {
	case constvars.AuditStoreMongo:
		auditRepository = audit.NewAuditMongoRepository(bootstrap.MongoDB, logger)
	default:
		auditRepository = audit.NewAuditPostgresRepository(db, logger)
	}

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	minioStorage := storageService.NewMinioStorage(bootstrap.Minio, logger)
	appointmentNotifier, err := notification.NewAppointmentNotifier(
		bootstrap.RabbitMQ,
		logger,
		internalConfig.RabbitMQ.AppointmentQueue,
	)
	if err != nil {
		return err
	}

	// Security
	sessionService := session.NewSessionService(redisRepository, internalConfig, logger)
	auditUsecase := audit.NewAuditUsecase(auditRepository, logger)
	entitySynchronizer := synchronizer.NewSynchronizer(
		userRepository,
		roleRepository,
		userRoleRepository,
		practitionerRepository,
		adminIdentityRepository,
		logger,
	)

	rolePolicy, err := auth.LoadRolePolicy(internalConfig.Gate.PolicyFile)
	if err != nil {
		return err
	}
	roleGate, err := auth.NewRoleGate(userRoleRepository, rolePolicy, internalConfig.Gate, logger)
	if err != nil {
		return err
	}

	// Usecases
	patientUsecase := patients.NewPatientUsecase(
		patientRepository,
		appointmentRepository,
		clinicalFileRepository,
		minioStorage,
		internalConfig,
		logger,
	)
	clinicalRecordUsecase := clinicalRecords.NewClinicalRecordUsecase(clinicalRecordRepository, patientRepository, logger)
	clinicalFileUsecase := clinicalFiles.NewClinicalFileUsecase(
		clinicalFileRepository,
		patientRepository,
		minioStorage,
		internalConfig,
		logger,
	)
	practitionerUsecase := practitioners.NewPractitionerUsecase(practitionerRepository, adminIdentityRepository, logger)
	availabilityUsecase := availabilities.NewAvailabilityUsecase(availabilityRepository, practitionerRepository, logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		patientRepository,
		practitionerRepository,
		auditUsecase,
		appointmentNotifier,
		logger,
	)
	roleUsecase := roles.NewRoleUsecase(roleRepository, userRoleRepository, entitySynchronizer, logger)
	userRoleUsecase := userRoles.NewUserRoleUsecase(
		userRoleRepository,
		userRepository,
		roleRepository,
		entitySynchronizer,
		logger,
	)
	userUsecase := users.NewUserUsecase(
		userRepository,
		roleRepository,
		userRoleRepository,
		practitionerRepository,
		entitySynchronizer,
		auditUsecase,
		logger,
	)
	authUsecase := auth.NewAuthUsecase(userRepository, userRoleRepository, sessionService, auditUsecase, logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(logger, sessionService, roleGate, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, &routers.Controllers{
		Patient:        controllers.NewPatientController(logger, patientUsecase),
		ClinicalRecord: controllers.NewClinicalRecordController(logger, clinicalRecordUsecase),
		ClinicalFile:   controllers.NewClinicalFileController(logger, clinicalFileUsecase),
		Practitioner:   controllers.NewPractitionerController(logger, practitionerUsecase),
		Availability:   controllers.NewAvailabilityController(logger, availabilityUsecase),
		Appointment:    controllers.NewAppointmentController(logger, appointmentUsecase),
		Role:           controllers.NewRoleController(logger, roleUsecase),
		UserRole:       controllers.NewUserRoleController(logger, userRoleUsecase),
		User:           controllers.NewUserController(logger, userUsecase),
		Auth:           controllers.NewAuthController(logger, authUsecase, internalConfig),
		Audit:          controllers.NewAuditController(logger, auditUsecase),
	})

	return nil
}
