package queries

const (
	CreatePatientQuery = `
		INSERT INTO patients (name, birth_date, gender, phone, address, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	FindPatientByIDQuery = `
		SELECT id, name, birth_date, gender, phone, address, email, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	// $1 is an optional case-insensitive substring matched on name or email.
	FindPatientsQuery = `
		SELECT id, name, birth_date, gender, phone, address, email, created_at, updated_at
		FROM patients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY name ASC, id ASC
	`

	UpdatePatientQuery = `
		UPDATE patients
		SET name = $1, birth_date = $2, gender = $3, phone = $4, address = $5, email = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	DeletePatientQuery = `DELETE FROM patients WHERE id = $1`

	ExistsPatientQuery = `SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`
)
