package queries

const (
	CreateRoleQuery = `
		INSERT INTO security_roles (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	FindRoleByIDQuery = `
		SELECT id, name, description FROM security_roles WHERE id = $1
	`

	FindRoleByNameQuery = `
		SELECT id, name, description FROM security_roles WHERE LOWER(name) = LOWER(TRIM($1))
	`

	FindRolesQuery = `
		SELECT id, name, description FROM security_roles ORDER BY id ASC
	`

	UpdateRoleQuery = `
		UPDATE security_roles SET name = $1, description = $2 WHERE id = $3
	`

	DeleteRoleQuery = `DELETE FROM security_roles WHERE id = $1`
)
