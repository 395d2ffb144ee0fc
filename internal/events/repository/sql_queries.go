package repository

const (
	createEventQuery = `INSERT INTO events (host_id, title, share_code, event_date)
					VALUES ($1, $2, $3, COALESCE(NULLIF($4, '0001-01-01'::timestamptz), now())) RETURNING *`
	getEventByIDQuery = `SELECT event_id, host_id, title, share_code, event_date, created_at, updated_at
					FROM events WHERE event_id = $1`
	getEventByShareCodeQuery = `SELECT event_id, host_id, title, share_code, event_date, created_at, updated_at
					FROM events WHERE share_code = $1`
	getEventsByHostQuery = `SELECT event_id, host_id, title, share_code, event_date, created_at, updated_at
					FROM events WHERE host_id = $1 ORDER BY event_date DESC OFFSET $2 LIMIT $3`
	getTotalEventsByHostQuery = `SELECT COUNT(event_id) FROM events WHERE host_id = $1`
	deleteEventQuery          = `DELETE FROM events WHERE event_id = $1 AND host_id = $2`
)
