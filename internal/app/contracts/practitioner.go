package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type PractitionerUsecase interface {
	ListPractitioners(ctx context.Context, query *requests.ListQuery) ([]models.Practitioner, error)
	GetPractitionerByID(ctx context.Context, practitionerID int64) (*models.Practitioner, error)
	CreatePractitioner(ctx context.Context, request *requests.CreatePractitioner) (*models.Practitioner, error)
	UpdatePractitioner(ctx context.Context, practitionerID int64, request *requests.PatchPractitioner) (*models.Practitioner, error)
	DeletePractitioner(ctx context.Context, practitionerID int64) error
}

type PractitionerRepository interface {
	FindAll(ctx context.Context, search string) ([]models.Practitioner, error)
	FindByID(ctx context.Context, practitionerID int64) (*models.Practitioner, error)
	FindBySecurityUserID(ctx context.Context, userID int64) (*models.Practitioner, error)
	Exists(ctx context.Context, practitionerID int64) (bool, error)
	Create(ctx context.Context, practitioner *models.Practitioner) error
	// CreateForSecurityUser is a get-or-create keyed by the unique security
	// user link; created is false when a practitioner already existed.
	CreateForSecurityUser(ctx context.Context, practitioner *models.Practitioner) (created bool, err error)
	Update(ctx context.Context, practitioner *models.Practitioner) error
	UpdateNameEmail(ctx context.Context, practitionerID int64, name, email string) error
	Delete(ctx context.Context, practitionerID int64) (deleted bool, err error)
	DeleteBySecurityUserID(ctx context.Context, userID int64) (deleted bool, err error)
}
