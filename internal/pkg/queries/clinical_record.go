package queries

const (
	CreateClinicalRecordQuery = `
		INSERT INTO clinical_records (patient_id, attended_at, description, diagnosis)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	FindClinicalRecordByIDQuery = `
		SELECT id, patient_id, attended_at, description, diagnosis
		FROM clinical_records
		WHERE id = $1
	`

	FindClinicalRecordsQuery = `
		SELECT id, patient_id, attended_at, description, diagnosis
		FROM clinical_records
		WHERE ($1::BIGINT IS NULL OR patient_id = $1)
		ORDER BY attended_at DESC, id DESC
	`

	UpdateClinicalRecordQuery = `
		UPDATE clinical_records
		SET patient_id = $1, attended_at = $2, description = $3, diagnosis = $4
		WHERE id = $5
	`

	DeleteClinicalRecordQuery = `DELETE FROM clinical_records WHERE id = $1`
)
