package config

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
	Gate     AppGate
	Audit    AppAudit
}

type App struct {
	Env                            string
	Port                           string
	Version                        string
	Address                        string
	Timezone                       string
	EndpointPrefix                 string
	AllowedOrigins                 []string
	MaxRequests                    int
	ShutdownTimeoutInSeconds       int
	MaxTimeRequestsPerSeconds      int
	RequestBodyLimitInMegabyte     int
	LoginSessionExpiredTimeInHours int
	LoginMaxAttemptsPerMinute      int
	LoginBlockDurationInMinutes    int
	SessionCookieSecure            bool
}

type AppJWT struct {
	Secret string
}

type AppMinio struct {
	BucketName                               string
	ClinicalFileMaxUploadSizeInMB            int
	MinioPreSignedUrlObjectExpiryTimeInHours int
}

type AppRabbitMQ struct {
	AppointmentQueue string
}

// AppGate configures the role authorization gate.
type AppGate struct {
	// DisableRolePermissions bypasses every role check. Meant for local debugging.
	DisableRolePermissions bool
	// FailClosed denies authenticated requests for actions with no configured roles.
	FailClosed bool
	// PolicyFile optionally points at a YAML policy overriding the built in table.
	PolicyFile string
}

type AppAudit struct {
	// Store selects the audit backend, "postgres" or "mongo".
	Store string
}
