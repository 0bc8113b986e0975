package queries

const (
	practitionerColumns = `id, admin_identity_id, security_user_id, name, specialty, phone, email, license_number`

	CreatePractitionerQuery = `
		INSERT INTO practitioners (admin_identity_id, security_user_id, name, specialty, phone, email, license_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	// Get-or-create keyed by the unique security user link. Returns no row
	// when the practitioner already exists.
	CreatePractitionerForSecurityUserQuery = `
		INSERT INTO practitioners (security_user_id, name, specialty, phone, email)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (security_user_id) DO NOTHING
		RETURNING id
	`

	FindPractitionerByIDQuery = `
		SELECT ` + practitionerColumns + `
		FROM practitioners
		WHERE id = $1
	`

	FindPractitionerBySecurityUserIDQuery = `
		SELECT ` + practitionerColumns + `
		FROM practitioners
		WHERE security_user_id = $1
	`

	FindPractitionersQuery = `
		SELECT ` + practitionerColumns + `
		FROM practitioners
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR specialty ILIKE '%' || $1 || '%')
		ORDER BY name ASC, id ASC
	`

	UpdatePractitionerQuery = `
		UPDATE practitioners
		SET admin_identity_id = $1, security_user_id = $2, name = $3, specialty = $4, phone = $5, email = $6, license_number = $7
		WHERE id = $8
	`

	UpdatePractitionerNameEmailQuery = `
		UPDATE practitioners SET name = $1, email = $2 WHERE id = $3
	`

	DeletePractitionerQuery = `DELETE FROM practitioners WHERE id = $1`

	DeletePractitionerBySecurityUserIDQuery = `DELETE FROM practitioners WHERE security_user_id = $1`

	ExistsPractitionerQuery = `SELECT EXISTS (SELECT 1 FROM practitioners WHERE id = $1)`
)
