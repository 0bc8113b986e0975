package queries

const (
	CreateAvailabilityQuery = `
		INSERT INTO availabilities (practitioner_id, available_at, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	FindAvailabilityByIDQuery = `
		SELECT id, practitioner_id, available_at, status
		FROM availabilities
		WHERE id = $1
	`

	FindAvailabilitiesQuery = `
		SELECT id, practitioner_id, available_at, status
		FROM availabilities
		WHERE ($1::BIGINT IS NULL OR practitioner_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY available_at ASC, id ASC
	`

	UpdateAvailabilityQuery = `
		UPDATE availabilities
		SET practitioner_id = $1, available_at = $2, status = $3
		WHERE id = $4
	`

	DeleteAvailabilityQuery = `DELETE FROM availabilities WHERE id = $1`
)
