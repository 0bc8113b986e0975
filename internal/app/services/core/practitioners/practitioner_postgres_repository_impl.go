package practitioners

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"
)

const (
	constraintPractitionerSecurityUser  = "practitioners_security_user_id_key"
	constraintPractitionerAdminIdentity = "practitioners_admin_identity_id_key"
)

type practitionerPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	practitionerPostgresRepositoryInstance contracts.PractitionerRepository
	oncePractitionerPostgresRepository     sync.Once
)

func NewPractitionerPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PractitionerRepository {
	oncePractitionerPostgresRepository.Do(func() {
		instance := &practitionerPostgresRepository{
			DB:  db,
			Log: logger,
		}
		practitionerPostgresRepositoryInstance = instance
	})
	return practitionerPostgresRepositoryInstance
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPractitioner(row rowScanner, practitioner *models.Practitioner) error {
	return row.Scan(
		&practitioner.ID, &practitioner.AdminIdentityID, &practitioner.SecurityUserID,
		&practitioner.Name, &practitioner.Specialty, &practitioner.Phone,
		&practitioner.Email, &practitioner.LicenseNumber,
	)
}

func (r *practitionerPostgresRepository) FindAll(ctx context.Context, search string) ([]models.Practitioner, error) {
	rows, err := r.DB.QueryContext(ctx, queries.FindPractitionersQuery, search)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	practitioners := make([]models.Practitioner, 0)
	for rows.Next() {
		var model models.Practitioner
		if err := scanPractitioner(rows, &model); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		practitioners = append(practitioners, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return practitioners, nil
}

func (r *practitionerPostgresRepository) FindByID(ctx context.Context, practitionerID int64) (*models.Practitioner, error) {
	return r.findOne(ctx, queries.FindPractitionerByIDQuery, practitionerID)
}

func (r *practitionerPostgresRepository) FindBySecurityUserID(ctx context.Context, userID int64) (*models.Practitioner, error) {
	return r.findOne(ctx, queries.FindPractitionerBySecurityUserIDQuery, userID)
}

func (r *practitionerPostgresRepository) findOne(ctx context.Context, query string, id int64) (*models.Practitioner, error) {
	var practitioner models.Practitioner
	err := scanPractitioner(r.DB.QueryRowContext(ctx, query, id), &practitioner)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &practitioner, nil
}

func (r *practitionerPostgresRepository) Exists(ctx context.Context, practitionerID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, queries.ExistsPractitionerQuery, practitionerID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (r *practitionerPostgresRepository) Create(ctx context.Context, practitioner *models.Practitioner) error {
	err := r.DB.QueryRowContext(ctx, queries.CreatePractitionerQuery,
		practitioner.AdminIdentityID, practitioner.SecurityUserID, practitioner.Name, practitioner.Specialty,
		practitioner.Phone, practitioner.Email, practitioner.LicenseNumber,
	).Scan(&practitioner.ID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		r.Log.Error("practitionerPostgresRepository.Create error inserting practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return mapPractitionerWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return nil
}

func (r *practitionerPostgresRepository) CreateForSecurityUser(ctx context.Context, practitioner *models.Practitioner) (bool, error) {
	err := r.DB.QueryRowContext(ctx, queries.CreatePractitionerForSecurityUserQuery,
		practitioner.SecurityUserID, practitioner.Name, practitioner.Specialty, practitioner.Email,
	).Scan(&practitioner.ID)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, exceptions.ErrPostgresDBInsertData(err)
	}
	return true, nil
}

func (r *practitionerPostgresRepository) Update(ctx context.Context, practitioner *models.Practitioner) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdatePractitionerQuery,
		practitioner.AdminIdentityID, practitioner.SecurityUserID, practitioner.Name, practitioner.Specialty,
		practitioner.Phone, practitioner.Email, practitioner.LicenseNumber, practitioner.ID,
	)
	if err != nil {
		return mapPractitionerWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return nil
}

func (r *practitionerPostgresRepository) UpdateNameEmail(ctx context.Context, practitionerID int64, name, email string) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdatePractitionerNameEmailQuery, name, email, practitionerID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Delete sets practitioner_id to NULL on appointments and removes the
// practitioner's availabilities.
func (r *practitionerPostgresRepository) Delete(ctx context.Context, practitionerID int64) (bool, error) {
	return r.delete(ctx, queries.DeletePractitionerQuery, practitionerID)
}

func (r *practitionerPostgresRepository) DeleteBySecurityUserID(ctx context.Context, userID int64) (bool, error) {
	return r.delete(ctx, queries.DeletePractitionerBySecurityUserIDQuery, userID)
}

func (r *practitionerPostgresRepository) delete(ctx context.Context, query string, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}

func mapPractitionerWriteError(err error, fallback func(error) *exceptions.CustomError) error {
	if constraint, ok := exceptions.UniqueViolationConstraint(err); ok {
		switch constraint {
		case constraintPractitionerSecurityUser, constraintPractitionerAdminIdentity:
			return exceptions.ErrLinkedUserAlreadyPractitioner(err)
		default:
			return exceptions.ErrUniqueViolation(err)
		}
	}
	if exceptions.IsForeignKeyViolation(err) {
		return exceptions.ErrReferencedNotFound(err, constvars.ResourceNameUser)
	}
	return fallback(err)
}
