package audit

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"context"
	"sync"

	"go.uber.org/zap"
)

type auditUsecase struct {
	AuditRepository contracts.AuditRepository
	Log             *zap.Logger
}

var (
	auditUsecaseInstance contracts.AuditUsecase
	onceAuditUsecase     sync.Once
)

func NewAuditUsecase(auditRepository contracts.AuditRepository, logger *zap.Logger) contracts.AuditUsecase {
	onceAuditUsecase.Do(func() {
		instance := &auditUsecase{
			AuditRepository: auditRepository,
			Log:             logger,
		}
		auditUsecaseInstance = instance
	})
	return auditUsecaseInstance
}

// Record appends one entry stamped with the server time. Callers treat the
// returned error as non-fatal.
func (uc *auditUsecase) Record(ctx context.Context, actorUserID int64, action string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	entry := &models.AuditEntry{UserID: actorUserID, Action: action}
	err := uc.AuditRepository.Create(ctx, entry)
	if err != nil {
		return err
	}

	uc.Log.Debug("auditUsecase.Record succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingUserIDKey, actorUserID),
		zap.String(constvars.LoggingActionKey, action),
	)
	return nil
}

func (uc *auditUsecase) ListAuditEntries(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("auditUsecase.ListAuditEntries called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	entries, err := uc.AuditRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("auditUsecase.ListAuditEntries error fetching entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return entries, nil
}
