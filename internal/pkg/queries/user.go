package queries

const (
	userColumns = `id, username, name, email, password_hash, status, last_login`

	// Insert Queries
	CreateUserQuery = `
		INSERT INTO security_users (username, name, email, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	// Select Queries
	FindUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM security_users
		WHERE id = $1
	`

	FindUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM security_users
		WHERE LOWER(email) = LOWER($1)
	`

	FindUsersQuery = `
		SELECT ` + userColumns + `
		FROM security_users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY id ASC
	`

	FindUsersByRoleNameQuery = `
		SELECT DISTINCT u.id, u.username, u.name, u.email, u.password_hash, u.status, u.last_login
		FROM security_users u
		JOIN security_user_roles ur ON ur.user_id = u.id
		JOIN security_roles r ON r.id = ur.role_id
		WHERE LOWER(TRIM(r.name)) = LOWER($1)
		ORDER BY u.id ASC
	`

	// Update Queries
	UpdateUserQuery = `
		UPDATE security_users
		SET username = $1, name = $2, email = $3, password_hash = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	UpdateUserLastLoginQuery = `
		UPDATE security_users SET last_login = $1 WHERE id = $2
	`

	UpdateUserPasswordHashQuery = `
		UPDATE security_users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`

	// Delete Queries
	DeleteUserQuery = `DELETE FROM security_users WHERE id = $1`
)
