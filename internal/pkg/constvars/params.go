package constvars

const (
	URLParamID = "id"
)

const (
	URLQueryParamSearch         = "search"
	URLQueryParamPatientID      = "patientId"
	URLQueryParamPractitionerID = "practitionerId"
	URLQueryParamStatus         = "status"
	URLQueryParamUserIDFilter   = "userId"
	URLQueryParamAction         = "accion"
	URLQueryParamUserID         = "usuario_id"
	URLQueryParamDateFrom       = "fecha_desde"
	URLQueryParamDateTo         = "fecha_hasta"
)

const (
	FormFieldPatientID    = "patientId"
	FormFieldFileName     = "fileName"
	FormFieldDocumentType = "documentType"
	FormFieldDescription  = "description"
	FormFieldFile         = "file"
)
