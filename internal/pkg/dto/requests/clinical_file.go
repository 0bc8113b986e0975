package requests

import "io"

// UploadClinicalFile is built from a multipart form. Every field is optional
// on partial updates; File is nil when the form carried no file part.
type UploadClinicalFile struct {
	PatientID    *int64
	FileName     *string `validate:"omitempty,min=1,max=255"`
	DocumentType *string `validate:"omitempty,max=100"`
	Description  *string
	File         io.Reader
	FileSize     int64
	ContentType  string
	OriginalName string
}
