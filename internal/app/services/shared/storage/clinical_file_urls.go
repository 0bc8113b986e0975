package storage

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"context"
	"time"

	"go.uber.org/zap"
)

// AttachClinicalFileURLs fills the URL of every file with a presigned link.
// A file whose link cannot be signed keeps an empty URL.
func AttachClinicalFileURLs(ctx context.Context, storage contracts.Storage, logger *zap.Logger, bucketName string, expiry time.Duration, files []models.ClinicalFile) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	for i := range files {
		if files[i].ObjectName == "" {
			continue
		}
		url, err := storage.GetObjectUrlWithExpiryTime(ctx, bucketName, files[i].ObjectName, expiry)
		if err != nil {
			logger.Warn("storage.AttachClinicalFileURLs cannot presign object",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, files[i].ObjectName),
				zap.Error(err),
			)
			continue
		}
		files[i].URL = url
	}
}
