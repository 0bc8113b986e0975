package queries

const (
	CreateUserRoleQuery = `
		INSERT INTO security_user_roles (user_id, role_id)
		VALUES ($1, $2)
		RETURNING id
	`

	FindUserRoleByIDQuery = `
		SELECT ur.id, ur.user_id, ur.role_id, r.name
		FROM security_user_roles ur
		JOIN security_roles r ON r.id = ur.role_id
		WHERE ur.id = $1
	`

	FindUserRolesQuery = `
		SELECT ur.id, ur.user_id, ur.role_id, r.name
		FROM security_user_roles ur
		JOIN security_roles r ON r.id = ur.role_id
		WHERE ($1::BIGINT IS NULL OR ur.user_id = $1)
		ORDER BY ur.id ASC
	`

	FindRoleNamesByUserIDQuery = `
		SELECT r.name
		FROM security_user_roles ur
		JOIN security_roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`

	// Counts the user's practitioner assignments other than $2.
	CountOtherRoleAssignmentsQuery = `
		SELECT COUNT(*)
		FROM security_user_roles ur
		JOIN security_roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		  AND ur.id <> $2
		  AND LOWER(TRIM(r.name)) = LOWER($3)
	`

	UpdateUserRoleQuery = `
		UPDATE security_user_roles SET user_id = $1, role_id = $2 WHERE id = $3
	`

	DeleteUserRoleQuery = `DELETE FROM security_user_roles WHERE id = $1`
)
