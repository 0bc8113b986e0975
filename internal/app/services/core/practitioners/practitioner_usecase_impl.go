package practitioners

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"

	"go.uber.org/zap"
)

type practitionerUsecase struct {
	PractitionerRepository  contracts.PractitionerRepository
	AdminIdentityRepository contracts.AdminIdentityRepository
	Log                     *zap.Logger
}

var (
	practitionerUsecaseInstance contracts.PractitionerUsecase
	oncePractitionerUsecase     sync.Once
)

func NewPractitionerUsecase(
	practitionerRepository contracts.PractitionerRepository,
	adminIdentityRepository contracts.AdminIdentityRepository,
	logger *zap.Logger,
) contracts.PractitionerUsecase {
	oncePractitionerUsecase.Do(func() {
		instance := &practitionerUsecase{
			PractitionerRepository:  practitionerRepository,
			AdminIdentityRepository: adminIdentityRepository,
			Log:                     logger,
		}
		practitionerUsecaseInstance = instance
	})
	return practitionerUsecaseInstance
}

func (uc *practitionerUsecase) ListPractitioners(ctx context.Context, query *requests.ListQuery) ([]models.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.ListPractitioners called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.PractitionerRepository.FindAll(ctx, query.Search)
}

func (uc *practitionerUsecase) GetPractitionerByID(ctx context.Context, practitionerID int64) (*models.Practitioner, error) {
	practitioner, err := uc.PractitionerRepository.FindByID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceNamePractitioner)
	}
	return practitioner, nil
}

// CreatePractitioner optionally provisions an administrative login for the
// practitioner when a username is supplied. The identity is removed again if
// the practitioner row cannot be written.
func (uc *practitionerUsecase) CreatePractitioner(ctx context.Context, request *requests.CreatePractitioner) (*models.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.CreatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitioner := &models.Practitioner{}
	applyPractitionerPatch(practitioner, request.ToPatch())
	if practitioner.Specialty == "" {
		practitioner.Specialty = constvars.PractitionerDefaultSpecialty
	}

	var identity *models.AdminIdentity
	if request.Username != "" {
		passwordHash, err := utils.HashPassword(request.Password)
		if err != nil {
			return nil, exceptions.ErrHashPassword(err)
		}
		identity = &models.AdminIdentity{
			Username:     request.Username,
			Email:        practitioner.Email,
			FirstName:    practitioner.Name,
			PasswordHash: passwordHash,
			IsActive:     true,
		}
		err = uc.AdminIdentityRepository.Create(ctx, identity)
		if err != nil {
			uc.Log.Error("practitionerUsecase.CreatePractitioner error creating admin identity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		practitioner.AdminIdentityID = &identity.ID
	}

	err := uc.PractitionerRepository.Create(ctx, practitioner)
	if err != nil {
		uc.Log.Error("practitionerUsecase.CreatePractitioner error creating practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if identity != nil {
			utils.BestEffort(ctx, uc.Log, "practitionerUsecase.CreatePractitioner rollback admin identity", func(ctx context.Context) error {
				_, err := uc.AdminIdentityRepository.Delete(ctx, identity.ID)
				return err
			})
		}
		return nil, err
	}

	uc.Log.Info("practitionerUsecase.CreatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPractitionerIDKey, practitioner.ID),
	)
	return practitioner, nil
}

func (uc *practitionerUsecase) UpdatePractitioner(ctx context.Context, practitionerID int64, request *requests.PatchPractitioner) (*models.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.UpdatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	practitioner, err := uc.GetPractitionerByID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	applyPractitionerPatch(practitioner, request)

	err = uc.PractitionerRepository.Update(ctx, practitioner)
	if err != nil {
		uc.Log.Error("practitionerUsecase.UpdatePractitioner error updating practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return practitioner, nil
}

// DeletePractitioner also removes the practitioner's administrative login.
func (uc *practitionerUsecase) DeletePractitioner(ctx context.Context, practitionerID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.DeletePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	practitioner, err := uc.GetPractitionerByID(ctx, practitionerID)
	if err != nil {
		return err
	}

	deleted, err := uc.PractitionerRepository.Delete(ctx, practitionerID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNamePractitioner)
	}

	if practitioner.AdminIdentityID != nil {
		identityID := *practitioner.AdminIdentityID
		utils.BestEffort(ctx, uc.Log, "practitionerUsecase.DeletePractitioner remove admin identity", func(ctx context.Context) error {
			_, err := uc.AdminIdentityRepository.Delete(ctx, identityID)
			return err
		})
	}
	return nil
}

func applyPractitionerPatch(practitioner *models.Practitioner, patch *requests.PatchPractitioner) {
	if patch.Name != nil {
		practitioner.Name = *patch.Name
	}
	if patch.Specialty != nil {
		practitioner.Specialty = *patch.Specialty
	}
	if patch.Phone != nil {
		practitioner.Phone = *patch.Phone
	}
	if patch.Email != nil {
		practitioner.Email = *patch.Email
	}
	if patch.LicenseNumber != nil {
		practitioner.LicenseNumber = *patch.LicenseNumber
	}
}
