package utils

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxMultipartMemory = 32 << 20

func ParseIDParam(r *http.Request) (int64, error) {
	param := chi.URLParam(r, constvars.URLParamID)
	if param == "" {
		return 0, exceptions.ErrURLParamIDValidation(errors.New("parameter is missing from url path"), constvars.URLParamID)
	}
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errors.New("id must be a positive integer")
		}
		return 0, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID)
	}
	return id, nil
}

// ParseOptionalInt64 returns nil for a blank value.
func ParseOptionalInt64(value, source string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, source)
	}
	return &parsed, nil
}

func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

// BuildUploadClinicalFileRequest reads the clinical file multipart form. The
// caller owns closing the returned file through closeFn.
func BuildUploadClinicalFileRequest(r *http.Request) (request *requests.UploadClinicalFile, closeFn func(), err error) {
	closeFn = func() {}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, closeFn, exceptions.ErrCannotParseMultipartForm(err)
	}

	request = new(requests.UploadClinicalFile)
	if raw := formValue(r, constvars.FormFieldPatientID); raw != nil {
		request.PatientID, err = ParseOptionalInt64(*raw, constvars.FormFieldPatientID)
		if err != nil {
			return nil, closeFn, err
		}
	}
	request.FileName = formValue(r, constvars.FormFieldFileName)
	request.DocumentType = formValue(r, constvars.FormFieldDocumentType)
	request.Description = formValue(r, constvars.FormFieldDescription)

	file, fileHeader, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return request, closeFn, nil
		}
		return nil, closeFn, exceptions.ErrCannotParseMultipartForm(err)
	}

	request.File = file
	request.FileSize = fileHeader.Size
	request.OriginalName = fileHeader.Filename
	request.ContentType = fileHeader.Header.Get(constvars.HeaderContentType)
	if request.ContentType == "" {
		request.ContentType = constvars.MIMEOctetStream
	}
	if request.FileName == nil || strings.TrimSpace(*request.FileName) == "" {
		name := fileHeader.Filename
		request.FileName = &name
	}
	closeFn = func() { file.Close() }
	return request, closeFn, nil
}

// GetSession returns the session resolved by the session middleware, or nil.
func GetSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
	return session
}

// GetSessionUserID returns the signed-in user's id, or nil for anonymous requests.
func GetSessionUserID(ctx context.Context) *int64 {
	session := GetSession(ctx)
	if session == nil || session.UserID == 0 {
		return nil
	}
	userID := session.UserID
	return &userID
}
