package availabilities

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"sync"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	PractitionerRepository contracts.PractitionerRepository
	Log                    *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	practitionerRepository contracts.PractitionerRepository,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		instance := &availabilityUsecase{
			AvailabilityRepository: availabilityRepository,
			PractitionerRepository: practitionerRepository,
			Log:                    logger,
		}
		availabilityUsecaseInstance = instance
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) ListAvailabilities(ctx context.Context, filter *requests.ListAvailabilities) ([]models.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.ListAvailabilities called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.AvailabilityRepository.FindAll(ctx, filter)
}

func (uc *availabilityUsecase) GetAvailabilityByID(ctx context.Context, availabilityID int64) (*models.Availability, error) {
	availability, err := uc.AvailabilityRepository.FindByID(ctx, availabilityID)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNameAvailability)
	}
	return availability, nil
}

func (uc *availabilityUsecase) CreateAvailability(ctx context.Context, request *requests.CreateAvailability) (*models.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.CreateAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.PractitionerID == nil {
		return nil, exceptions.ErrFieldRequired(nil, "practitionerId")
	}
	if request.Timestamp == nil {
		return nil, exceptions.ErrFieldRequired(nil, "timestamp")
	}

	availability := &models.Availability{Status: constvars.AvailabilityStatusAvailable}
	applyAvailabilityPatch(availability, request.ToPatch())

	err := uc.ensurePractitionerExists(ctx, availability.PractitionerID)
	if err != nil {
		return nil, err
	}

	err = uc.AvailabilityRepository.Create(ctx, availability)
	if err != nil {
		uc.Log.Error("availabilityUsecase.CreateAvailability error creating availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return availability, nil
}

func (uc *availabilityUsecase) UpdateAvailability(ctx context.Context, availabilityID int64, request *requests.PatchAvailability) (*models.Availability, error) {
	availability, err := uc.GetAvailabilityByID(ctx, availabilityID)
	if err != nil {
		return nil, err
	}

	applyAvailabilityPatch(availability, request)

	if request.PractitionerID != nil {
		err = uc.ensurePractitionerExists(ctx, availability.PractitionerID)
		if err != nil {
			return nil, err
		}
	}

	err = uc.AvailabilityRepository.Update(ctx, availability)
	if err != nil {
		return nil, err
	}
	return availability, nil
}

func (uc *availabilityUsecase) DeleteAvailability(ctx context.Context, availabilityID int64) error {
	deleted, err := uc.AvailabilityRepository.Delete(ctx, availabilityID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNameAvailability)
	}
	return nil
}

func (uc *availabilityUsecase) ensurePractitionerExists(ctx context.Context, practitionerID int64) error {
	exists, err := uc.PractitionerRepository.Exists(ctx, practitionerID)
	if err != nil {
		return err
	}
	if !exists {
		return exceptions.ErrReferencedNotFound(nil, constvars.ResourceNamePractitioner)
	}
	return nil
}

func applyAvailabilityPatch(availability *models.Availability, patch *requests.PatchAvailability) {
	if patch.PractitionerID != nil {
		availability.PractitionerID = *patch.PractitionerID
	}
	if patch.Timestamp != nil {
		availability.AvailableAt = patch.Timestamp.UTC()
	}
	if patch.Status != nil {
		availability.Status = *patch.Status
	}
}
