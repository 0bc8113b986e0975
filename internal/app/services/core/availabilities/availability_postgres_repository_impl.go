package availabilities

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

type availabilityPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	availabilityPostgresRepositoryInstance contracts.AvailabilityRepository
	onceAvailabilityPostgresRepository     sync.Once
)

func NewAvailabilityPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AvailabilityRepository {
	onceAvailabilityPostgresRepository.Do(func() {
		instance := &availabilityPostgresRepository{
			DB:  db,
			Log: logger,
		}
		availabilityPostgresRepositoryInstance = instance
	})
	return availabilityPostgresRepositoryInstance
}

func (r *availabilityPostgresRepository) FindAll(ctx context.Context, filter *requests.ListAvailabilities) ([]models.Availability, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindAvailabilitiesQuery, filter.PractitionerID, filter.Status)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	availabilities := make([]models.Availability, 0)
	for rows.Next() {
		var model models.Availability
		if err := rows.Scan(&model.ID, &model.PractitionerID, &model.AvailableAt, &model.Status); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		availabilities = append(availabilities, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return availabilities, nil
}

func (r *availabilityPostgresRepository) FindByID(ctx context.Context, availabilityID int64) (*models.Availability, error) {
	var availability models.Availability
	err := r.DB.QueryRowContext(ctx, queries.FindAvailabilityByIDQuery, availabilityID).Scan(
		&availability.ID, &availability.PractitionerID, &availability.AvailableAt, &availability.Status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &availability, nil
}

func (r *availabilityPostgresRepository) Create(ctx context.Context, availability *models.Availability) error {
	err := r.DB.QueryRowContext(ctx, queries.CreateAvailabilityQuery,
		availability.PractitionerID, availability.AvailableAt, availability.Status,
	).Scan(&availability.ID)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNamePractitioner)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *availabilityPostgresRepository) Update(ctx context.Context, availability *models.Availability) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateAvailabilityQuery,
		availability.PractitionerID, availability.AvailableAt, availability.Status, availability.ID,
	)
	if err != nil {
		if exceptions.IsForeignKeyViolation(err) {
			return exceptions.ErrReferencedNotFound(err, constvars.ResourceNamePractitioner)
		}
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *availabilityPostgresRepository) Delete(ctx context.Context, availabilityID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteAvailabilityQuery, availabilityID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
