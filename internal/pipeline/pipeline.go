package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
)

const defaultWorkers = 3

// MediaStore is the relational persistence surface consumed by the pipeline.
// The placeholder row is inserted at admission by the caller; the pipeline
// finalizes it on success and deletes it during failure cleanup.
type MediaStore interface {
	QuotaSource
	FinalizeMedia(ctx context.Context, mediaID uuid.UUID, previewKey string) error
	DeleteMedia(ctx context.Context, mediaID uuid.UUID) error
}

// Notifier publishes lifecycle milestones to an event's real-time channel.
// Delivery is best effort; publish errors never fail a job.
type Notifier interface {
	PublishMediaEvent(ctx context.Context, event *models.MediaEvent) error
}

// Invalidator drops cached gallery listings once new media lands.
type Invalidator interface {
	InvalidateEventMedia(ctx context.Context, eventID uuid.UUID) error
}

// Result is delivered exactly once per submitted job, on its terminal state.
type Result struct {
	JobID      uuid.UUID
	Status     models.JobStatus
	PreviewKey string
	Err        error
}

// Deps are the injected collaborators of a Scheduler.
type Deps struct {
	Store       MediaStore
	Objects     ObjectStore
	Notifier    Notifier
	Invalidator Invalidator
	Transcoder  Transcoder
	Logger      logger.Logger
}

// Scheduler admits ingestion jobs into an unbounded FIFO backlog and runs
// them with a fixed number of worker slots. Within one job the stages run
// strictly in order (quota, transcode, upload, persist, notify); across jobs
// only the slot bound couples them.
type Scheduler struct {
	cfg         *config.Config
	store       MediaStore
	notifier    Notifier
	invalidator Invalidator
	transcoder  Transcoder
	uploader    *Uploader
	quota       *QuotaEnforcer
	progress    *ProgressTracker
	logger      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	slots chan struct{}
	wake  chan struct{}

	mu      sync.Mutex
	backlog []*pendingJob

	wg sync.WaitGroup
}

type pendingJob struct {
	job    *models.IngestionJob
	result chan Result
}

func NewScheduler(cfg *config.Config, deps Deps) *Scheduler {
	workers := cfg.Pipeline.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:         cfg,
		store:       deps.Store,
		notifier:    deps.Notifier,
		invalidator: deps.Invalidator,
		transcoder:  deps.Transcoder,
		uploader:    NewUploader(deps.Objects, deps.Logger),
		quota:       NewQuotaEnforcer(deps.Store),
		progress:    NewProgressTracker(cfg.Pipeline.Retention()),
		logger:      deps.Logger,
		ctx:         ctx,
		cancel:      cancel,
		slots:       make(chan struct{}, workers),
		wake:        make(chan struct{}, 1),
	}
}

// Start launches the dispatch loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.dispatch()
	s.logger.Infof("pipeline scheduler started with %d worker slots", cap(s.slots))
}

// Stop cancels in-flight work and waits for workers to wind down. Jobs killed
// mid-flight end as failed; backlog entries that never started are dropped
// (in-flight state is not durable).
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Submit admits a job without blocking. The returned channel receives the
// job's terminal Result exactly once; intermediate states are visible only
// through Status.
func (s *Scheduler) Submit(job *models.IngestionJob) <-chan Result {
	job.EnqueuedAt = time.Now()
	result := make(chan Result, 1)

	s.progress.Update(job.JobID, models.JobStatusQueued, 0, "")
	s.publish(job, models.JobStatusQueued, 0, "", "")

	s.mu.Lock()
	s.backlog = append(s.backlog, &pendingJob{job: job, result: result})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return result
}

// Status reads a job's progress record; ok is false for ids never admitted or
// already reaped.
func (s *Scheduler) Status(jobID uuid.UUID) (models.ProgressRecord, bool) {
	return s.progress.Read(jobID)
}

func (s *Scheduler) dispatch() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}
		for {
			p := s.popOldest()
			if p == nil {
				break
			}
			select {
			case s.slots <- struct{}{}:
			case <-s.ctx.Done():
				return
			}
			s.wg.Add(1)
			go s.run(p)
		}
	}
}

func (s *Scheduler) popOldest() *pendingJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.backlog) == 0 {
		return nil
	}
	p := s.backlog[0]
	s.backlog = s.backlog[1:]
	return p
}

// run executes one job's full pipeline inside a worker slot. Any error or
// panic is contained here: the slot is always released and unrelated jobs are
// untouched.
func (s *Scheduler) run(p *pendingJob) {
	defer s.wg.Done()
	defer func() { <-s.slots }()

	job := p.job
	defer s.cleanupScratch(job)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("job %s panicked: %v", job.JobID, r)
			s.finishFailed(p, fmt.Errorf("internal error: %v", r), nil)
		}
	}()

	ctx := s.ctx

	s.setProgress(job, models.JobStatusStarted, 10)

	if err := s.quota.Check(ctx, job.OwnerID, job.SizeBytes); err != nil {
		s.finishFailed(p, err, nil)
		return
	}

	s.setProgress(job, models.JobStatusProcessing, 25)
	previewPath, err := s.transcoder.DerivePreview(ctx, job)
	if err != nil {
		s.finishFailed(p, err, nil)
		return
	}

	s.setProgress(job, models.JobStatusUploading, 70)
	originalKey, previewKey, err := s.uploader.UploadPair(ctx, job, previewPath)
	if err != nil {
		// UploadPair already removed whichever object survived a partial failure.
		s.finishFailed(p, err, nil)
		return
	}

	if err := s.store.FinalizeMedia(ctx, job.JobID, previewKey); err != nil {
		s.finishFailed(p, errors.Wrap(err, "persist failed"), []string{originalKey, previewKey})
		return
	}

	if err := s.invalidator.InvalidateEventMedia(ctx, job.EventID); err != nil {
		s.logger.Warnf("job %s: gallery invalidation failed: %v", job.JobID, err)
	}

	s.progress.Update(job.JobID, models.JobStatusCompleted, 100, "")
	s.publish(job, models.JobStatusCompleted, 100, previewKey, "")
	s.logger.Infof("job %s completed: %s", job.JobID, previewKey)

	p.result <- Result{JobID: job.JobID, Status: models.JobStatusCompleted, PreviewKey: previewKey}
}

func (s *Scheduler) setProgress(job *models.IngestionJob, status models.JobStatus, percent int) {
	s.progress.Update(job.JobID, status, percent, "")
	s.publish(job, status, percent, "", "")
}

// finishFailed records the terminal failure and runs compensating cleanup.
// Cleanup is best effort: its own errors are logged, never escalated.
func (s *Scheduler) finishFailed(p *pendingJob, cause error, uploadedKeys []string) {
	job := p.job
	s.logger.Errorf("job %s failed: %v", job.JobID, cause)

	rec, _ := s.progress.Read(job.JobID)
	s.progress.Update(job.JobID, models.JobStatusFailed, -1, cause.Error())
	s.publish(job, models.JobStatusFailed, rec.Percent, "", cause.Error())

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, key := range uploadedKeys {
		if err := s.uploader.store.RemoveObject(cleanupCtx, key); err != nil {
			s.logger.Errorf("job %s cleanup: failed to remove object %s: %v", job.JobID, key, err)
		}
	}
	if err := s.store.DeleteMedia(cleanupCtx, job.JobID); err != nil {
		s.logger.Errorf("job %s cleanup: failed to delete media row: %v", job.JobID, err)
	}

	p.result <- Result{JobID: job.JobID, Status: models.JobStatusFailed, Err: cause}
}

func (s *Scheduler) publish(job *models.IngestionJob, status models.JobStatus, percent int, previewKey, errDetail string) {
	event := &models.MediaEvent{
		JobID:      job.JobID,
		EventID:    job.EventID,
		Status:     status,
		Percent:    percent,
		PreviewKey: previewKey,
		Error:      errDetail,
	}
	if err := s.notifier.PublishMediaEvent(s.ctx, event); err != nil {
		s.logger.Warnf("job %s: publish %s failed: %v", job.JobID, status, err)
	}
}

// cleanupScratch removes the job's private staging directory. Paths are
// namespaced per job id so concurrent jobs never collide.
func (s *Scheduler) cleanupScratch(job *models.IngestionJob) {
	dir := filepath.Dir(job.SourcePath)
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Errorf("job %s: failed to remove scratch dir %s: %v", job.JobID, dir, err)
	}
}
