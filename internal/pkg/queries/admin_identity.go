package queries

const (
	adminIdentityColumns = `id, username, email, first_name, password_hash, is_active`

	CreateAdminIdentityQuery = `
		INSERT INTO admin_identities (username, email, first_name, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	FindAdminIdentityByIDQuery = `
		SELECT ` + adminIdentityColumns + ` FROM admin_identities WHERE id = $1
	`

	FindAdminIdentityByEmailQuery = `
		SELECT ` + adminIdentityColumns + ` FROM admin_identities
		WHERE $1 <> '' AND LOWER(email) = LOWER($1)
		ORDER BY id ASC
		LIMIT 1
	`

	FindAdminIdentityByUsernameQuery = `
		SELECT ` + adminIdentityColumns + ` FROM admin_identities WHERE username = $1
	`

	UpdateAdminIdentityQuery = `
		UPDATE admin_identities
		SET username = $1, email = $2, first_name = $3, password_hash = $4, is_active = $5
		WHERE id = $6
	`

	DeleteAdminIdentityQuery = `DELETE FROM admin_identities WHERE id = $1`
)
