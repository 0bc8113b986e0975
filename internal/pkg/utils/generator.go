package utils

import (
	"clinic-service/internal/pkg/constvars"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateClinicalFileObjectName keeps the original extension so presigned
// downloads carry a usable file name.
func GenerateClinicalFileObjectName(patientID int64, originalName string) string {
	timestamp := time.Now().Format("20060102_150405")
	extension := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%d/%s_%s%s", constvars.ClinicalFilesObjectPrefix, patientID, timestamp, uuid.New().String()[:8], extension)
}

// DeriveAdminUsername picks the base username for a new administrative
// identity: the user's username, else the local part of the email.
func DeriveAdminUsername(username, email string) string {
	base := strings.TrimSpace(username)
	if base == "" {
		base = strings.SplitN(strings.TrimSpace(email), "@", 2)[0]
	}
	return base
}

func DisambiguatedUsername(base string, userID int64) string {
	return fmt.Sprintf("%s_%d", base, userID)
}
