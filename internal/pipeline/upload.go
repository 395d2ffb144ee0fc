package pipeline

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
)

// ObjectStore is the durable object storage surface the pipeline depends on.
type ObjectStore interface {
	PutObject(ctx context.Context, localPath, key, contentType string) error
	RemoveObject(ctx context.Context, key string) error
}

// Uploader pushes the original and its preview to object storage under
// deterministic keys. The two puts run concurrently; the stage succeeds only
// when both do, and a lone survivor of a partial failure is deleted so no
// orphaned object remains.
type Uploader struct {
	store  ObjectStore
	logger logger.Logger
}

func NewUploader(store ObjectStore, log logger.Logger) *Uploader {
	return &Uploader{store: store, logger: log}
}

type putSpec struct {
	localPath   string
	key         string
	contentType string
}

func (u *Uploader) UploadPair(ctx context.Context, job *models.IngestionJob, previewPath string) (string, string, error) {
	originalKey := models.OriginalKey(job.EventID, job.JobID, job.FileExt)
	previewKey := models.PreviewKey(job.EventID, job.JobID, job.Kind)

	puts := []putSpec{
		{localPath: job.SourcePath, key: originalKey, contentType: job.ContentType},
		{localPath: previewPath, key: previewKey, contentType: models.PreviewContentType(job.Kind)},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []string
	)
	errChan := make(chan error, 1)

	for _, p := range puts {
		wg.Add(1)
		go func(p putSpec) {
			defer wg.Done()
			if err := u.store.PutObject(ctx, p.localPath, p.key, p.contentType); err != nil {
				select {
				case errChan <- errors.Wrapf(err, "upload failed for %s", p.key):
				default:
				}
				return
			}
			mu.Lock()
			succeeded = append(succeeded, p.key)
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		for _, key := range succeeded {
			if rmErr := u.store.RemoveObject(ctx, key); rmErr != nil {
				u.logger.Errorf("failed to remove orphaned object %s: %v", key, rmErr)
			}
		}
		return "", "", err
	}
	return originalKey, previewKey, nil
}
