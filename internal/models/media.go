package models

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaFile is the durable row for one upload. It is inserted before processing
// starts (processing=true) and finalized once the preview exists.
type MediaFile struct {
	MediaID     uuid.UUID  `json:"media_id" db:"media_id" redis:"media_id" validate:"omitempty"`
	EventID     uuid.UUID  `json:"event_id" db:"event_id" redis:"event_id" validate:"required"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty" db:"owner_id" redis:"owner_id" validate:"omitempty"`
	Kind        MediaKind  `json:"kind" db:"kind" redis:"kind" validate:"required,oneof=image video"`
	FileName    string     `json:"file_name" db:"file_name" redis:"file_name" validate:"required,lte=255"`
	FileSize    int64      `json:"file_size" db:"file_size" redis:"file_size" validate:"required"`
	ContentType string     `json:"content_type" db:"content_type" redis:"content_type" validate:"required,lte=100"`
	S3Key       string     `json:"s3_key" db:"s3_key" redis:"s3_key" validate:"required,lte=255"`
	PreviewKey  string     `json:"preview_key" db:"preview_key" redis:"preview_key" validate:"omitempty,lte=255"`
	Processing  bool       `json:"processing" db:"processing" redis:"processing"`
	UploadedAt  time.Time  `json:"uploaded_at" db:"uploaded_at" redis:"uploaded_at" validate:"omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" redis:"updated_at" validate:"omitempty"`
}

// MediaURLs holds short-lived presigned download links for one media item.
type MediaURLs struct {
	MediaID     uuid.UUID `json:"media_id"`
	OriginalURL string    `json:"original_url"`
	PreviewURL  string    `json:"preview_url,omitempty"`
}

// MediaUploadInput carries one multipart upload into the ingestion path.
type MediaUploadInput struct {
	EventID     uuid.UUID
	OwnerID     *uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UploadReceipt is returned to the client as soon as a job is admitted.
type UploadReceipt struct {
	JobID   uuid.UUID `json:"job_id"`
	EventID uuid.UUID `json:"event_id"`
	Status  JobStatus `json:"status"`
}

type MediaList struct {
	Media      []*MediaFile `json:"media"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
}

// OriginalKey builds the deterministic object key for an original upload.
func OriginalKey(eventID, mediaID uuid.UUID, ext string) string {
	return fmt.Sprintf("events/%s/originals/%s%s", eventID, mediaID, ext)
}

// PreviewKey builds the deterministic object key for a derived preview. It is
// reconstructable from ids alone so gallery reads never need a lookup.
func PreviewKey(eventID, mediaID uuid.UUID, kind MediaKind) string {
	ext := ".jpg"
	if kind == MediaKindVideo {
		ext = ".mp4"
	}
	return fmt.Sprintf("events/%s/previews/%s%s", eventID, mediaID, ext)
}

// PreviewContentType reports the mime type of the derived preview artifact.
func PreviewContentType(kind MediaKind) string {
	if kind == MediaKindVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}
