package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/internal/pipeline"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type fakeRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*models.MediaFile
	hostID    uuid.UUID
	deleted   []uuid.UUID
	createErr error
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[uuid.UUID]*models.MediaFile)}
}

func (f *fakeRepo) CreateMedia(ctx context.Context, m *models.MediaFile) (*models.MediaFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.rows[m.MediaID] = m
	return m, nil
}

func (f *fakeRepo) FinalizeMedia(ctx context.Context, mediaID uuid.UUID, previewKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[mediaID]
	if !ok {
		return fmt.Errorf("failed to finalize media: %w", sql.ErrNoRows)
	}
	row.Processing = false
	row.PreviewKey = previewKey
	return nil
}

func (f *fakeRepo) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, mediaID)
	f.deleted = append(f.deleted, mediaID)
	return nil
}

func (f *fakeRepo) GetMediaByID(ctx context.Context, mediaID uuid.UUID) (*models.MediaFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[mediaID]
	if !ok {
		return nil, fmt.Errorf("failed to get media by id: %w", sql.ErrNoRows)
	}
	return row, nil
}

func (f *fakeRepo) GetEventMedia(ctx context.Context, eventID uuid.UUID, pq *utils.Pagination) (*models.MediaList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return &models.MediaList{Media: []*models.MediaFile{}, Page: pq.GetPage(), PageSize: pq.GetSize()}, nil
}

func (f *fakeRepo) GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error) {
	return &models.StorageQuota{LimitBytes: models.UnlimitedQuota}, nil
}

func (f *fakeRepo) GetEventHost(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	return f.hostID, nil
}

type fakeRedis struct {
	mu     sync.Mutex
	cached *models.MediaList
	sets   int
	dels   []uuid.UUID
}

func (f *fakeRedis) PublishMediaEvent(ctx context.Context, event *models.MediaEvent) error { return nil }

func (f *fakeRedis) InvalidateEventMedia(ctx context.Context, eventID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dels = append(f.dels, eventID)
	return nil
}

func (f *fakeRedis) GetEventMediaCtx(ctx context.Context, eventID uuid.UUID) (*models.MediaList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cached, nil
}

func (f *fakeRedis) SetEventMediaCtx(ctx context.Context, eventID uuid.UUID, list *models.MediaList, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.cached = list
	return nil
}

type fakeAWS struct {
	mu      sync.Mutex
	removed []string
}

func (f *fakeAWS) PutObject(ctx context.Context, localPath, key, contentType string) error {
	return nil
}

func (f *fakeAWS) RemoveObject(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeAWS) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://example.test/" + key, nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	submitted []*models.IngestionJob
	statuses  map[uuid.UUID]models.ProgressRecord
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{statuses: make(map[uuid.UUID]models.ProgressRecord)}
}

func (f *fakeScheduler) Submit(job *models.IngestionJob) <-chan pipeline.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, job)
	ch := make(chan pipeline.Result, 1)
	ch <- pipeline.Result{JobID: job.JobID, Status: models.JobStatusCompleted}
	return ch
}

func (f *fakeScheduler) Status(jobID uuid.UUID) (models.ProgressRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.statuses[jobID]
	return record, ok
}

type ucEnv struct {
	uc        media.UseCase
	repo      *fakeRepo
	redis     *fakeRedis
	aws       *fakeAWS
	scheduler *fakeScheduler
	scratch   string
}

func newUCEnv(t *testing.T) *ucEnv {
	t.Helper()
	repo := newFakeRepo()
	redisRepo := &fakeRedis{}
	awsRepo := &fakeAWS{}
	scheduler := newFakeScheduler()
	scratch := t.TempDir()
	cfg := &config.Config{
		Pipeline: config.PipelineConfig{ScratchDir: scratch, MaxUploadSizeMB: 16},
	}
	uc := NewMediaUseCase(cfg, repo, redisRepo, awsRepo, scheduler, logger.NewWithZap(zaptest.NewLogger(t)))
	return &ucEnv{uc: uc, repo: repo, redis: redisRepo, aws: awsRepo, scheduler: scheduler, scratch: scratch}
}

func TestSubmitUpload_StagesAndAdmits(t *testing.T) {
	env := newUCEnv(t)
	owner := uuid.New()
	eventID := uuid.New()

	receipt, resultCh, err := env.uc.SubmitUpload(context.Background(), &models.MediaUploadInput{
		EventID:     eventID,
		OwnerID:     &owner,
		FileName:    "party.JPG",
		ContentType: "image/jpeg",
		Size:        5,
		File:        strings.NewReader("hello"),
	})
	if err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}
	if receipt.Status != models.JobStatusQueued || receipt.EventID != eventID {
		t.Errorf("receipt = %+v, want queued for event %s", receipt, eventID)
	}
	if resultCh == nil {
		t.Fatal("nil result channel")
	}

	if len(env.scheduler.submitted) != 1 {
		t.Fatalf("expected 1 admitted job, got %d", len(env.scheduler.submitted))
	}
	job := env.scheduler.submitted[0]
	if job.JobID != receipt.JobID || job.Kind != models.MediaKindImage || job.FileExt != ".jpg" {
		t.Errorf("job = %+v, want image job %s with .jpg ext", job, receipt.JobID)
	}
	data, err := os.ReadFile(job.SourcePath)
	if err != nil || string(data) != "hello" {
		t.Errorf("staged file = %q (%v), want %q", data, err, "hello")
	}

	row, ok := env.repo.rows[receipt.JobID]
	if !ok {
		t.Fatal("placeholder row was not inserted")
	}
	if !row.Processing {
		t.Error("placeholder row not marked processing")
	}
	if want := models.OriginalKey(eventID, receipt.JobID, ".jpg"); row.S3Key != want {
		t.Errorf("row s3 key = %q, want %q", row.S3Key, want)
	}
	if row.FileSize != 5 {
		t.Errorf("row size = %d, want staged byte count 5", row.FileSize)
	}
}

func TestSubmitUpload_RejectsUnsupportedContentType(t *testing.T) {
	env := newUCEnv(t)

	_, _, err := env.uc.SubmitUpload(context.Background(), &models.MediaUploadInput{
		EventID:     uuid.New(),
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        3,
		File:        strings.NewReader("abc"),
	})
	if err == nil {
		t.Fatal("expected error for text/plain")
	}
	if len(env.scheduler.submitted) != 0 {
		t.Error("job was admitted for unsupported content type")
	}
	entries, _ := os.ReadDir(env.scratch)
	if len(entries) != 0 {
		t.Errorf("scratch not empty after rejection: %v", entries)
	}
}

func TestSubmitUpload_RejectsOversizedFile(t *testing.T) {
	env := newUCEnv(t)

	_, _, err := env.uc.SubmitUpload(context.Background(), &models.MediaUploadInput{
		EventID:     uuid.New(),
		FileName:    "huge.mp4",
		ContentType: "video/mp4",
		Size:        17 << 20,
		File:        strings.NewReader("x"),
	})
	if err == nil || !strings.Contains(err.Error(), "upload limit") {
		t.Fatalf("expected upload limit error, got %v", err)
	}
}

func TestSubmitUpload_RowInsertFailureRemovesScratch(t *testing.T) {
	env := newUCEnv(t)
	env.repo.createErr = fmt.Errorf("connection refused")

	_, _, err := env.uc.SubmitUpload(context.Background(), &models.MediaUploadInput{
		EventID:     uuid.New(),
		FileName:    "party.jpg",
		ContentType: "image/jpeg",
		Size:        5,
		File:        strings.NewReader("hello"),
	})
	if err == nil {
		t.Fatal("expected insert error to surface")
	}
	entries, _ := os.ReadDir(env.scratch)
	if len(entries) != 0 {
		t.Errorf("scratch not cleaned after insert failure: %v", entries)
	}
	if len(env.scheduler.submitted) != 0 {
		t.Error("job admitted despite insert failure")
	}
}

func TestGetJobStatus_TrackerThenRowFallback(t *testing.T) {
	env := newUCEnv(t)
	jobID := uuid.New()

	env.scheduler.statuses[jobID] = models.ProgressRecord{JobID: jobID, Status: models.JobStatusUploading, Percent: 70}
	record, err := env.uc.GetJobStatus(context.Background(), jobID)
	if err != nil || record.Status != models.JobStatusUploading {
		t.Fatalf("live record = %+v (%v), want uploading", record, err)
	}

	// Reaped from the tracker but finalized in the store.
	delete(env.scheduler.statuses, jobID)
	env.repo.rows[jobID] = &models.MediaFile{MediaID: jobID, Processing: false}
	record, err = env.uc.GetJobStatus(context.Background(), jobID)
	if err != nil || record.Status != models.JobStatusCompleted || record.Percent != 100 {
		t.Fatalf("fallback record = %+v (%v), want completed/100", record, err)
	}

	if _, err = env.uc.GetJobStatus(context.Background(), uuid.New()); !errors.Is(err, media.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound for unknown job, got %v", err)
	}
}

func TestListEventMedia_ReadThroughCache(t *testing.T) {
	env := newUCEnv(t)
	eventID := uuid.New()
	pq := &utils.Pagination{}

	if _, err := env.uc.ListEventMedia(context.Background(), eventID, pq); err != nil {
		t.Fatalf("ListEventMedia: %v", err)
	}
	if env.repo.listCalls != 1 || env.redis.sets != 1 {
		t.Fatalf("cold read: repo calls %d, cache sets %d, want 1/1", env.repo.listCalls, env.redis.sets)
	}

	if _, err := env.uc.ListEventMedia(context.Background(), eventID, pq); err != nil {
		t.Fatalf("ListEventMedia: %v", err)
	}
	if env.repo.listCalls != 1 {
		t.Errorf("warm read hit the repo (%d calls), expected cache to answer", env.repo.listCalls)
	}
}

func TestGetMediaURLs_FinalizedRowsOnly(t *testing.T) {
	env := newUCEnv(t)

	id := uuid.New()
	env.repo.rows[id] = &models.MediaFile{
		MediaID:    id,
		S3Key:      "events/x/originals/" + id.String() + ".jpg",
		PreviewKey: "events/x/previews/" + id.String() + ".jpg",
	}

	urls, err := env.uc.GetMediaURLs(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMediaURLs: %v", err)
	}
	if urls.OriginalURL != "https://example.test/events/x/originals/"+id.String()+".jpg" {
		t.Errorf("unexpected original url %q", urls.OriginalURL)
	}
	if urls.PreviewURL == "" {
		t.Error("expected a preview url")
	}

	processing := uuid.New()
	env.repo.rows[processing] = &models.MediaFile{MediaID: processing, Processing: true}
	if _, err = env.uc.GetMediaURLs(context.Background(), processing); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("processing row = %v, want ErrMediaNotFound", err)
	}

	if _, err = env.uc.GetMediaURLs(context.Background(), uuid.New()); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("missing row = %v, want ErrMediaNotFound", err)
	}
}

func TestDeleteMedia_OwnerHostAndStranger(t *testing.T) {
	env := newUCEnv(t)
	ownerID := uuid.New()
	hostID := uuid.New()
	strangerID := uuid.New()
	env.repo.hostID = hostID

	addRow := func() uuid.UUID {
		id := uuid.New()
		env.repo.rows[id] = &models.MediaFile{
			MediaID:    id,
			EventID:    uuid.New(),
			OwnerID:    &ownerID,
			S3Key:      "events/x/originals/" + id.String() + ".jpg",
			PreviewKey: "events/x/previews/" + id.String() + ".jpg",
		}
		return id
	}

	id := addRow()
	err := env.uc.DeleteMedia(context.Background(), &models.User{UserID: strangerID}, id)
	if !errors.Is(err, media.ErrNotAllowed) {
		t.Fatalf("stranger delete = %v, want ErrNotAllowed", err)
	}

	if err = env.uc.DeleteMedia(context.Background(), &models.User{UserID: ownerID}, id); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(env.aws.removed) != 2 {
		t.Errorf("expected original and preview removed, got %v", env.aws.removed)
	}
	if len(env.redis.dels) != 1 {
		t.Errorf("expected one cache invalidation, got %d", len(env.redis.dels))
	}

	id = addRow()
	if err = env.uc.DeleteMedia(context.Background(), &models.User{UserID: hostID}, id); err != nil {
		t.Fatalf("host delete: %v", err)
	}

	if err = env.uc.DeleteMedia(context.Background(), &models.User{UserID: ownerID}, uuid.New()); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("missing media delete = %v, want ErrMediaNotFound", err)
	}
}
