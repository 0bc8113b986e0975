package queries

const (
	appointmentColumns = `id, patient_id, practitioner_id, scheduled_at, status`

	CreateAppointmentQuery = `
		INSERT INTO appointments (patient_id, practitioner_id, scheduled_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	FindAppointmentByIDQuery = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`

	FindAppointmentsQuery = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE ($1::BIGINT IS NULL OR patient_id = $1)
		  AND ($2::BIGINT IS NULL OR practitioner_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY scheduled_at ASC, id ASC
	`

	FindAppointmentSummariesByPatientIDQuery = `
		SELECT a.id, a.scheduled_at, a.status, p.name
		FROM appointments a
		LEFT JOIN practitioners p ON p.id = a.practitioner_id
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_at DESC, a.id DESC
	`

	UpdateAppointmentQuery = `
		UPDATE appointments
		SET patient_id = $1, practitioner_id = $2, scheduled_at = $3, status = $4
		WHERE id = $5
	`

	// Only transitions rows that are not cancelled yet, so a repeated cancel
	// affects zero rows.
	CancelAppointmentQuery = `
		UPDATE appointments SET status = 'cancelled'
		WHERE id = $1 AND status <> 'cancelled'
	`

	DeleteAppointmentQuery = `DELETE FROM appointments WHERE id = $1`

	// Window is half open: [$2, $3). $4 excludes the row being updated (0 for none).
	ExistsActiveAppointmentForPatientQuery = `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE patient_id = $1
			  AND status <> 'cancelled'
			  AND scheduled_at >= $2 AND scheduled_at < $3
			  AND id <> $4
		)
	`

	ExistsActiveAppointmentForPractitionerQuery = `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE practitioner_id = $1
			  AND status <> 'cancelled'
			  AND scheduled_at >= $2 AND scheduled_at < $3
			  AND id <> $4
		)
	`

	// Transaction scoped; released on commit or rollback. $1 is the lock
	// namespace, $2 the entity id folded into the int4 key space.
	AdvisoryXactLockQuery = `SELECT pg_advisory_xact_lock($1::INT, ($2::BIGINT % 2147483647)::INT)`
)
