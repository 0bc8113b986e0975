package queries

const (
	CreateClinicalFileQuery = `
		INSERT INTO clinical_files (patient_id, file_name, document_type, description, object_name, content_type, size, attached_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, attached_at
	`

	FindClinicalFileByIDQuery = `
		SELECT id, patient_id, file_name, document_type, description, object_name, content_type, size, attached_at
		FROM clinical_files
		WHERE id = $1
	`

	// Newest first. $2 matches file name, document type or description.
	FindClinicalFilesQuery = `
		SELECT id, patient_id, file_name, document_type, description, object_name, content_type, size, attached_at
		FROM clinical_files
		WHERE ($1::BIGINT IS NULL OR patient_id = $1)
		  AND ($2 = '' OR file_name ILIKE '%' || $2 || '%' OR document_type ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY attached_at DESC, id DESC
	`

	FindClinicalFileObjectNamesByPatientIDQuery = `
		SELECT object_name FROM clinical_files WHERE patient_id = $1
	`

	UpdateClinicalFileQuery = `
		UPDATE clinical_files
		SET patient_id = $1, file_name = $2, document_type = $3, description = $4, object_name = $5, content_type = $6, size = $7
		WHERE id = $8
	`

	DeleteClinicalFileQuery = `DELETE FROM clinical_files WHERE id = $1`
)
