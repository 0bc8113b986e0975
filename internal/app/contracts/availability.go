package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type AvailabilityUsecase interface {
	ListAvailabilities(ctx context.Context, filter *requests.ListAvailabilities) ([]models.Availability, error)
	GetAvailabilityByID(ctx context.Context, availabilityID int64) (*models.Availability, error)
	CreateAvailability(ctx context.Context, request *requests.CreateAvailability) (*models.Availability, error)
	UpdateAvailability(ctx context.Context, availabilityID int64, request *requests.PatchAvailability) (*models.Availability, error)
	DeleteAvailability(ctx context.Context, availabilityID int64) error
}

type AvailabilityRepository interface {
	FindAll(ctx context.Context, filter *requests.ListAvailabilities) ([]models.Availability, error)
	FindByID(ctx context.Context, availabilityID int64) (*models.Availability, error)
	Create(ctx context.Context, availability *models.Availability) error
	Update(ctx context.Context, availability *models.Availability) error
	Delete(ctx context.Context, availabilityID int64) (deleted bool, err error)
}
