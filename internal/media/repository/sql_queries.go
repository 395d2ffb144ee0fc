package repository

const (
	createMediaQuery = `INSERT INTO media_files (media_id, event_id, owner_id, kind, file_name, file_size, content_type, s3_key, processing)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE) RETURNING *`
	finalizeMediaQuery = `UPDATE media_files SET processing = FALSE, preview_key = $2, updated_at = now()
					WHERE media_id = $1 AND processing = TRUE`
	deleteMediaQuery   = `DELETE FROM media_files WHERE media_id = $1`
	getMediaByIDQuery  = `SELECT media_id, event_id, owner_id, kind, file_name, file_size, content_type, s3_key, preview_key, processing, uploaded_at, updated_at
					FROM media_files WHERE media_id = $1`
	getEventMediaQuery = `SELECT media_id, event_id, owner_id, kind, file_name, file_size, content_type, s3_key, preview_key, processing, uploaded_at, updated_at
					FROM media_files WHERE event_id = $1 AND processing = FALSE ORDER BY uploaded_at DESC OFFSET $2 LIMIT $3`
	getTotalEventMediaQuery = `SELECT COUNT(media_id) FROM media_files WHERE event_id = $1 AND processing = FALSE`
	getUserQuotaQuery       = `SELECT u.storage_quota_bytes AS limit_bytes,
					COALESCE((SELECT SUM(m.file_size) FROM media_files m WHERE m.owner_id = u.user_id AND m.processing = FALSE), 0) AS used_bytes
					FROM users u WHERE u.user_id = $1`
	getEventHostQuery = `SELECT host_id FROM events WHERE event_id = $1`
)
