package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingUserIDKey         = "user_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingRoleIDKey         = "role_id"
	LoggingUserRoleIDKey     = "user_role_id"
	LoggingIdentityIDKey     = "identity_id"
	LoggingResourceKey       = "resource"
	LoggingActionKey         = "action"
	LoggingDecisionKey       = "decision"
	LoggingQueueNameKey      = "queue_name"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingSessionIDKey      = "session_id"
	LoggingOperationKey      = "operation"
	LoggingCountKey          = "count"
)
