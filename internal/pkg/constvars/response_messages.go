package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"

	// Generic CRUD messages, formatted with the resource name
	CreateSuccessMessage = "%s created successfully"
	UpdateSuccessMessage = "%s updated successfully"
	DeleteSuccessMessage = "%s deleted successfully"
	GetSuccessMessage    = "get %s successfully"
	ListSuccessMessage   = "list %s successfully"

	// Appointment messages
	RequestAppointmentSuccessMessage = "appointment requested successfully"
	CancelAppointmentSuccessMessage  = "appointment cancelled successfully"

	// Patient messages
	GetPatientHistorySuccessMessage = "get patient history successfully"

	// Auth messages
	LoginSuccessMessage          = "login success"
	LogoutSuccessMessage         = "logout success"
	GetProfileSuccessMessage     = "get profile successfully"
	ChangePasswordSuccessMessage = "password changed successfully"

	// Receptionist messages
	ListReceptionistsSuccessMessage  = "list receptionists successfully"
	CreateReceptionistSuccessMessage = "receptionist created successfully"
)

// Audit action texts written by usecases
const (
	AuditActionAppointmentRequested = "appointment requested (appointment_id=%d)"
	AuditActionAppointmentCancelled = "appointment cancelled (appointment_id=%d)"
	AuditActionLogin                = "login"
	AuditActionLogout               = "logout"
	AuditActionUserCreated          = "user created (user_id=%d)"
	AuditActionUserUpdated          = "user updated (user_id=%d)"
	AuditActionUserDeleted          = "user deleted (user_id=%d)"
	AuditActionPasswordChanged      = "password changed (user_id=%d)"
	AuditActionReceptionistCreated  = "receptionist created (user_id=%d)"
)

// Resource names used in response and error messages
const (
	ResourceNamePatient          = "patient"
	ResourceNameClinicalRecord   = "clinical record"
	ResourceNameClinicalFile     = "clinical file"
	ResourceNamePractitioner     = "practitioner"
	ResourceNameAvailability     = "availability"
	ResourceNameAppointment      = "appointment"
	ResourceNameAppointmentParty = "patient or practitioner"
	ResourceNameRole             = "role"
	ResourceNameUser             = "user"
	ResourceNameUserRole         = "user role"
	ResourceNameUserRoleParty    = "user or role"
	ResourceNameAuditEntry       = "audit entries"
)
