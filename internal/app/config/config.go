package config

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:               utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:               utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:           utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:           utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DbName:             utils.GetEnvString("POSTGRES_DB_NAME", "clinic"),
			SSLMode:            utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConnections: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNECTIONS", 25),
			MaxIdleConnections: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "clinic"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                           utils.GetEnvString("APP_PORT", "8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Address:                        utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "America/Bogota"),
			EndpointPrefix:                 strings.Trim(utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"), "/"),
			AllowedOrigins:                 utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:      utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:     utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 12),
			LoginMaxAttemptsPerMinute:      utils.GetEnvInt("APP_LOGIN_MAX_ATTEMPTS_PER_MINUTE", 10),
			LoginBlockDurationInMinutes:    utils.GetEnvInt("APP_LOGIN_BLOCK_DURATION_IN_MINUTES", 5),
			SessionCookieSecure:            utils.GetEnvBool("APP_SESSION_COOKIE_SECURE", false),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Minio: AppMinio{
			BucketName:                               utils.GetEnvString("APP_MINIO_BUCKET_NAME", "clinical-files"),
			ClinicalFileMaxUploadSizeInMB:            utils.GetEnvInt("APP_MINIO_CLINICAL_FILE_MAX_UPLOAD_SIZE_IN_MB", 10),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 1),
		},
		RabbitMQ: AppRabbitMQ{
			AppointmentQueue: utils.GetEnvString("APP_RABBITMQ_APPOINTMENT_QUEUE", "clinic.appointments"),
		},
		Gate: AppGate{
			DisableRolePermissions: utils.GetEnvBool("DISABLE_ROLE_PERMS", false),
			FailClosed:             utils.GetEnvBool("APP_ROLE_GATE_FAIL_CLOSED", false),
			PolicyFile:             utils.GetEnvString("APP_ROLE_POLICY_FILE", ""),
		},
		Audit: AppAudit{
			Store: strings.ToLower(utils.GetEnvString("APP_AUDIT_STORE", constvars.AuditStorePostgres)),
		},
	}
}
