package queries

const (
	CreateAuditEntryQuery = `
		INSERT INTO audit_entries (user_id, action, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	FindAuditEntriesQuery = `
		SELECT id, user_id, action, created_at
		FROM audit_entries
		WHERE ($1 = '' OR action ILIKE '%' || $1 || '%')
		  AND ($2::BIGINT IS NULL OR user_id = $2)
		  AND ($3::TIMESTAMPTZ IS NULL OR created_at >= $3)
		  AND ($4::TIMESTAMPTZ IS NULL OR created_at <= $4)
		ORDER BY created_at DESC, id DESC
	`
)
