package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_KEY              ContextKey = "session"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CLINIC_SVC_"
)

// Resources guarded by the role authorization gate.
const (
	ResourcePatients        = "patients"
	ResourceClinicalRecords = "clinical-records"
	ResourceClinicalFiles   = "clinical-files"
	ResourcePractitioners   = "practitioners"
	ResourceAvailabilities  = "availabilities"
	ResourceAppointments    = "appointments"
	ResourceRoles           = "roles"
	ResourceUsers           = "users"
	ResourceUserRoles       = "user-roles"
	ResourceAudit           = "audit"
)

// Standard CRUD actions plus the named custom operations.
const (
	ActionList               = "list"
	ActionRetrieve           = "retrieve"
	ActionCreate             = "create"
	ActionUpdate             = "update"
	ActionPartialUpdate      = "partial_update"
	ActionDelete             = "delete"
	ActionRequest            = "solicitar"
	ActionCancel             = "cancelar"
	ActionHistory            = "historial"
	ActionLogin              = "login"
	ActionLogout             = "logout"
	ActionMe                 = "me"
	ActionReceptionists      = "recepcionistas"
	ActionCreateReceptionist = "crear_recepcionista"
	ActionChangePassword     = "cambiar_contrasena"
)

const (
	RoleAdmin            = "admin"
	RoleReceptionist     = "receptionist"
	RolePractitioner     = "practitioner"
	// RoleAnyAuthenticated in a policy entry admits every signed-in user.
	RoleAnyAuthenticated = "*"
)

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

const (
	AvailabilityStatusAvailable = "available"
	AvailabilityStatusBusy      = "busy"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

const (
	PractitionerDefaultSpecialty = "General"
	ClinicalFilesObjectPrefix    = "clinical-files"
	SessionCookieName            = "clinic_session"
	RedisSessionKeyPrefix        = "session:"
	AuditStorePostgres           = "postgres"
	AuditStoreMongo              = "mongo"
	MongoCollectionAuditEntries  = "audit_entries"
	AppEnvProduction             = "production"
	AppEnvDevelopment            = "development"
)

const (
	EventAppointmentRequested = "appointment.requested"
	EventAppointmentCancelled = "appointment.cancelled"
)
