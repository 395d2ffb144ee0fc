package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/internal/pipeline"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

const (
	galleryCacheTTL = 60 * time.Second
	downloadURLTTL  = 15 * time.Minute
)

type mediaUC struct {
	cfg       *config.Config
	mediaRepo media.Repository
	redisRepo media.RedisRepository
	awsRepo   media.AWSRepository
	scheduler media.Scheduler
	logger    logger.Logger
}

func NewMediaUseCase(
	cfg *config.Config,
	mediaRepo media.Repository,
	redisRepo media.RedisRepository,
	awsRepo media.AWSRepository,
	scheduler media.Scheduler,
	log logger.Logger,
) media.UseCase {
	return &mediaUC{
		cfg:       cfg,
		mediaRepo: mediaRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		scheduler: scheduler,
		logger:    log,
	}
}

// SubmitUpload stages the incoming file to scratch, records the placeholder
// row and admits the job. It returns as soon as the job is queued; processing
// happens on the pipeline's worker slots.
func (m *mediaUC) SubmitUpload(ctx context.Context, input *models.MediaUploadInput) (*models.UploadReceipt, <-chan pipeline.Result, error) {
	kind, err := detectKind(input.ContentType)
	if err != nil {
		return nil, nil, err
	}
	if maxMB := m.cfg.Pipeline.MaxUploadSizeMB; maxMB > 0 && input.Size > maxMB<<20 {
		return nil, nil, fmt.Errorf("file exceeds the %dMB upload limit", maxMB)
	}

	jobID := uuid.New()
	ext := fileExt(input.FileName, kind)

	scratchDir := filepath.Join(m.cfg.Pipeline.ScratchDir, jobID.String())
	sourcePath, written, err := m.stageFile(scratchDir, ext, input.File)
	if err != nil {
		m.logger.Errorf("SubmitUpload - stageFile error: %v", err)
		return nil, nil, fmt.Errorf("failed to stage upload: %v", err)
	}

	mediaFile := &models.MediaFile{
		MediaID:     jobID,
		EventID:     input.EventID,
		OwnerID:     input.OwnerID,
		Kind:        kind,
		FileName:    input.FileName,
		FileSize:    written,
		ContentType: input.ContentType,
		S3Key:       models.OriginalKey(input.EventID, jobID, ext),
	}
	if _, err = m.mediaRepo.CreateMedia(ctx, mediaFile); err != nil {
		m.logger.Errorf("SubmitUpload - CreateMedia error: %v", err)
		if rmErr := os.RemoveAll(scratchDir); rmErr != nil {
			m.logger.Warnf("failed to remove scratch dir %s: %v", scratchDir, rmErr)
		}
		return nil, nil, err
	}

	resultCh := m.scheduler.Submit(&models.IngestionJob{
		JobID:       jobID,
		EventID:     input.EventID,
		OwnerID:     input.OwnerID,
		Kind:        kind,
		SourcePath:  sourcePath,
		SizeBytes:   written,
		ContentType: input.ContentType,
		FileExt:     ext,
		EnqueuedAt:  time.Now(),
	})

	return &models.UploadReceipt{
		JobID:   jobID,
		EventID: input.EventID,
		Status:  models.JobStatusQueued,
	}, resultCh, nil
}

func (m *mediaUC) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.ProgressRecord, error) {
	if record, ok := m.scheduler.Status(jobID); ok {
		return &record, nil
	}

	// Tracker entries are reaped after the retention window; a finalized row
	// still answers for old completed jobs.
	mediaFile, err := m.mediaRepo.GetMediaByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, media.ErrJobNotFound
		}
		m.logger.Errorf("GetJobStatus - GetMediaByID error: %v", err)
		return nil, media.ErrJobNotFound
	}
	if mediaFile.Processing {
		return nil, media.ErrJobNotFound
	}
	return &models.ProgressRecord{
		JobID:     jobID,
		Status:    models.JobStatusCompleted,
		Percent:   100,
		UpdatedAt: mediaFile.UpdatedAt,
	}, nil
}

func (m *mediaUC) ListEventMedia(ctx context.Context, eventID uuid.UUID, pq *utils.Pagination) (*models.MediaList, error) {
	cacheable := pq.GetPage() <= 1
	if cacheable {
		cached, err := m.redisRepo.GetEventMediaCtx(ctx, eventID)
		if err != nil {
			m.logger.Warnf("ListEventMedia - cache read error: %v", err)
		} else if cached != nil && cached.PageSize == pq.GetSize() {
			return cached, nil
		}
	}

	list, err := m.mediaRepo.GetEventMedia(ctx, eventID, pq)
	if err != nil {
		m.logger.Errorf("ListEventMedia - GetEventMedia error: %v", err)
		return nil, err
	}

	if cacheable {
		if err = m.redisRepo.SetEventMediaCtx(ctx, eventID, list, galleryCacheTTL); err != nil {
			m.logger.Warnf("ListEventMedia - cache write error: %v", err)
		}
	}
	return list, nil
}

// GetMediaURLs returns presigned download links for a finalized media item.
// Items still processing are not downloadable yet.
func (m *mediaUC) GetMediaURLs(ctx context.Context, mediaID uuid.UUID) (*models.MediaURLs, error) {
	mediaFile, err := m.mediaRepo.GetMediaByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, media.ErrMediaNotFound
		}
		m.logger.Errorf("GetMediaURLs - GetMediaByID error: %v", err)
		return nil, media.ErrMediaNotFound
	}
	if mediaFile.Processing {
		return nil, media.ErrMediaNotFound
	}

	urls := &models.MediaURLs{MediaID: mediaID}
	if urls.OriginalURL, err = m.awsRepo.GetPresignedURL(ctx, mediaFile.S3Key, downloadURLTTL); err != nil {
		m.logger.Errorf("GetMediaURLs - presign original error: %v", err)
		return nil, fmt.Errorf("failed to presign download: %v", err)
	}
	if mediaFile.PreviewKey != "" {
		if urls.PreviewURL, err = m.awsRepo.GetPresignedURL(ctx, mediaFile.PreviewKey, downloadURLTTL); err != nil {
			m.logger.Errorf("GetMediaURLs - presign preview error: %v", err)
			return nil, fmt.Errorf("failed to presign download: %v", err)
		}
	}
	return urls, nil
}

// DeleteMedia removes the row first, then the objects. Object removal is best
// effort once the row is gone.
func (m *mediaUC) DeleteMedia(ctx context.Context, requester *models.User, mediaID uuid.UUID) error {
	mediaFile, err := m.mediaRepo.GetMediaByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return media.ErrMediaNotFound
		}
		m.logger.Errorf("DeleteMedia - GetMediaByID error: %v", err)
		return media.ErrMediaNotFound
	}

	if err = m.authorizeDelete(ctx, requester, mediaFile); err != nil {
		return err
	}

	if err = m.mediaRepo.DeleteMedia(ctx, mediaID); err != nil {
		m.logger.Errorf("DeleteMedia - DeleteMedia error: %v", err)
		return err
	}

	if err = m.awsRepo.RemoveObject(ctx, mediaFile.S3Key); err != nil {
		m.logger.Warnf("failed to remove original %s: %v", mediaFile.S3Key, err)
	}
	if mediaFile.PreviewKey != "" {
		if err = m.awsRepo.RemoveObject(ctx, mediaFile.PreviewKey); err != nil {
			m.logger.Warnf("failed to remove preview %s: %v", mediaFile.PreviewKey, err)
		}
	}
	if err = m.redisRepo.InvalidateEventMedia(ctx, mediaFile.EventID); err != nil {
		m.logger.Warnf("failed to invalidate media cache for event %s: %v", mediaFile.EventID, err)
	}
	return nil
}

// Deletion is allowed for the uploader and for the event host.
func (m *mediaUC) authorizeDelete(ctx context.Context, requester *models.User, mediaFile *models.MediaFile) error {
	if requester == nil {
		return media.ErrNotAllowed
	}
	if mediaFile.OwnerID != nil && *mediaFile.OwnerID == requester.UserID {
		return nil
	}
	hostID, err := m.mediaRepo.GetEventHost(ctx, mediaFile.EventID)
	if err != nil {
		m.logger.Errorf("authorizeDelete - GetEventHost error: %v", err)
		return media.ErrNotAllowed
	}
	if hostID != requester.UserID {
		return media.ErrNotAllowed
	}
	return nil
}

func (m *mediaUC) stageFile(scratchDir, ext string, src io.Reader) (string, int64, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	sourcePath := filepath.Join(scratchDir, "original"+ext)
	dst, err := os.Create(sourcePath)
	if err != nil {
		os.RemoveAll(scratchDir)
		return "", 0, fmt.Errorf("failed to create staging file: %w", err)
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.RemoveAll(scratchDir)
		return "", 0, fmt.Errorf("failed to write staging file: %w", err)
	}
	return sourcePath, written, nil
}

func detectKind(contentType string) (models.MediaKind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaKindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaKindVideo, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
}

func fileExt(fileName string, kind models.MediaKind) string {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		return ext
	}
	if kind == models.MediaKindVideo {
		return ".mp4"
	}
	return ".jpg"
}
