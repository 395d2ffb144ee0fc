package repository

const (
	createUserQuery = `INSERT INTO users (fullname, email, password, username, storage_quota_bytes, created_at, updated_at)
						VALUES ($1, $2, $3, $4, $5, now(), now())
						RETURNING *`
	getUserQuery = `SELECT user_id, fullname, username, email, storage_quota_bytes, created_at, updated_at
					 FROM users
					 WHERE user_id = $1`
	getUserByEmailQuery = `SELECT user_id, fullname, username, password, email, storage_quota_bytes, created_at, updated_at
						FROM users WHERE email = $1`
	getUserQuotaQuery = `SELECT u.storage_quota_bytes AS limit_bytes,
					COALESCE((SELECT SUM(m.file_size) FROM media_files m WHERE m.owner_id = u.user_id AND m.processing = FALSE), 0) AS used_bytes
					FROM users u WHERE u.user_id = $1`
)
