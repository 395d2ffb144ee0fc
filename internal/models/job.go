package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusStarted    JobStatus = "started"
	JobStatusProcessing JobStatus = "processing"
	JobStatusUploading  JobStatus = "uploading"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// IngestionJob is one accepted upload travelling through the pipeline. The job
// id doubles as the media row id so object keys stay derivable.
type IngestionJob struct {
	JobID       uuid.UUID  `json:"job_id" redis:"job_id"`
	EventID     uuid.UUID  `json:"event_id" redis:"event_id"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty" redis:"owner_id"`
	Kind        MediaKind  `json:"kind" redis:"kind"`
	SourcePath  string     `json:"source_path" redis:"source_path"`
	SizeBytes   int64      `json:"size_bytes" redis:"size_bytes"`
	ContentType string     `json:"content_type" redis:"content_type"`
	FileExt     string     `json:"file_ext" redis:"file_ext"`
	EnqueuedAt  time.Time  `json:"enqueued_at" redis:"enqueued_at"`
}

// ProgressRecord is the ephemeral per-job state kept in memory only.
type ProgressRecord struct {
	JobID       uuid.UUID `json:"job_id"`
	Status      JobStatus `json:"status"`
	Percent     int       `json:"percent"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MediaEvent is the payload published to an event's real-time channel at each
// pipeline milestone.
type MediaEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	EventID    uuid.UUID `json:"event_id"`
	Status     JobStatus `json:"status"`
	Percent    int       `json:"percent"`
	PreviewKey string    `json:"preview_key,omitempty"`
	Error      string    `json:"error,omitempty"`
}
