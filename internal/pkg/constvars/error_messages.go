package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"email":             "must be a valid email",
	"alphanum":          "must contain only alphanumeric characters",
	"min":               "must be at least %s characters long",
	"max":               "maximum at %s characters long",
	"numeric":           "must be a number",
	"len":               "must be %s characters long",
	"oneof":             "must be one of [%s]",
	"gt":                "must be greater than %s",
	"gte":               "must be greater than or equal to %s",
	"lt":                "must be less than %s",
	"lte":               "must be less than or equal to %s",
	"url":               "must be a valid URL",
	"required_with":     "is required when %s is present",
	"required_without":  "is required when %s is not present",
	"gender":            "must be either 'M' or 'F'",
	"appointment_state": "must be one of [pending, confirmed, cancelled]",
	"date_only":         "must be a date formatted as YYYY-MM-DD",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"gt":               true,
	"gte":              true,
	"lt":               true,
	"lte":              true,
	"oneof":            true,
	"required_with":    true,
	"required_without": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you do not have permission to perform this action"
	ErrClientNotLoggedIn                   = "authentication credentials were not provided"
	ErrClientInvalidCredentials            = "invalid credentials"
	ErrClientCurrentCredentialIncorrect    = "the current password is incorrect"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientUsernameAlreadyExists         = "username already used"
	ErrClientRoleNameAlreadyExists         = "role name already used"
	ErrClientLinkedUserAlreadyPractitioner = "the user is already linked to another practitioner"
	ErrClientResourceNotFound              = "%s not found"
	ErrClientReferencedNotFound            = "%s does not exist"
	ErrClientPatientConflict               = "the patient already has an appointment within 1 hour of that time"
	ErrClientPractitionerConflict          = "that time (±1 hour) is already taken for the selected practitioner"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientFileRequired                  = "file is required"
	ErrClientFileTooLarge                  = "file exceeds the maximum size of %d MB"
	ErrClientFieldRequired                 = "%s is required"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat            = "invalid %s format"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevCurrentCredentialInvalid = "current credential does not match stored hash"

	// Usecase messages
	ErrDevEmailAlreadyExists    = "email already exists"
	ErrDevUsernameAlreadyExists = "username already exists"
	ErrDevResourceNotExists     = "%s with the given id not exists in our system"
	ErrDevReferencedNotExists   = "referenced %s not exists in our system"
	ErrDevAppointmentConflict   = "appointment conflict: %s"
	ErrDevUniqueViolation       = "unique constraint violated"
	ErrDevRoleNameAlreadyExists = "role name already exists"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevFileMissing                = "multipart form has no file part"
	ErrDevFileTooLarge               = "uploaded file exceeds the configured limit"
	ErrDevFieldMissing               = "required field %s is missing"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthPermissionDenied      = "permission denied for %s on %s"
	ErrDevAuthGenerateToken         = "failed to generate token"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToInsertData       = "failed to insert data into database"
	ErrDevDBFailedToUpdateData       = "failed to update data into database"
	ErrDevDBFailedToFindData         = "failed when do find data on database"
	ErrDevDBFailedToDeleteData       = "failed when do delete data on database"
	ErrDevDBFailedToIterateDataset   = "failed when iterating dataset from database"
	ErrDevDBFailedToBeginTx          = "failed to begin database transaction"
	ErrDevDBFailedToCommitTx         = "failed to commit database transaction"
	ErrDevDBFailedToAcquireLock      = "failed to acquire advisory lock"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"
	ErrDevMinioFailedToRemoveObject          = "failed to remove object from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue '%s'"

	// Server messages
	ErrDevServerInternalError    = "internal server error"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevRequestLimitExceeded   = "request limit exceeded"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
