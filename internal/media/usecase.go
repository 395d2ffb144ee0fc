package media

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/internal/pipeline"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrMediaNotFound = errors.New("media not found")
	ErrNotAllowed    = errors.New("not allowed")
)

// Scheduler is the admission surface of the ingestion pipeline.
type Scheduler interface {
	Submit(job *models.IngestionJob) <-chan pipeline.Result
	Status(jobID uuid.UUID) (models.ProgressRecord, bool)
}

type UseCase interface {
	SubmitUpload(ctx context.Context, input *models.MediaUploadInput) (*models.UploadReceipt, <-chan pipeline.Result, error)
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.ProgressRecord, error)
	ListEventMedia(ctx context.Context, eventID uuid.UUID, pq *utils.Pagination) (*models.MediaList, error)
	GetMediaURLs(ctx context.Context, mediaID uuid.UUID) (*models.MediaURLs, error)
	DeleteMedia(ctx context.Context, requester *models.User, mediaID uuid.UUID) error
}
