package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

// ProgressTracker is the in-memory job state table. It is the only state
// besides the worker slots shared across concurrent jobs; all synchronization
// is internal. Entries are not durable and are reaped a retention window after
// reaching a terminal status.
type ProgressTracker struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*models.ProgressRecord
	retention time.Duration
}

func NewProgressTracker(retention time.Duration) *ProgressTracker {
	if retention <= 0 {
		retention = 10 * time.Minute
	}
	return &ProgressTracker{
		records:   make(map[uuid.UUID]*models.ProgressRecord),
		retention: retention,
	}
}

// Update moves a job's record forward. Percent is monotonically non-decreasing
// within a job: a lower value than the current one is kept, and a negative
// percent means "keep whatever is there". Updates after a terminal status are
// dropped.
func (t *ProgressTracker) Update(jobID uuid.UUID, status models.JobStatus, percent int, errDetail string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[jobID]
	if !ok {
		rec = &models.ProgressRecord{JobID: jobID}
		t.records[jobID] = rec
	}
	if rec.Status.Terminal() {
		return
	}

	rec.Status = status
	if percent > rec.Percent {
		if percent > 100 {
			percent = 100
		}
		rec.Percent = percent
	}
	if status == models.JobStatusFailed {
		rec.ErrorDetail = errDetail
	}
	rec.UpdatedAt = time.Now()

	if status.Terminal() {
		id := jobID
		time.AfterFunc(t.retention, func() { t.remove(id) })
	}
}

// Read returns a copy of the job's record. The second return value is false
// for ids that were never seen or have been reaped; callers must treat that as
// "unknown", not as queued.
func (t *ProgressTracker) Read(jobID uuid.UUID) (models.ProgressRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[jobID]
	if !ok {
		return models.ProgressRecord{}, false
	}
	return *rec, true
}

func (t *ProgressTracker) remove(jobID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, jobID)
}

// Len reports the number of live records.
func (t *ProgressTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
