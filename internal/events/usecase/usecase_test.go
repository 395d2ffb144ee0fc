package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type fakeEventsRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*models.Event
	byCode map[string]*models.Event
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{
		byID:   make(map[uuid.UUID]*models.Event),
		byCode: make(map[string]*models.Event),
	}
}

func (f *fakeEventsRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.EventID = uuid.New()
	f.byID[event.EventID] = event
	f.byCode[event.ShareCode] = event
	return event, nil
}

func (f *fakeEventsRepo) GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.byID[eventID]
	if !ok {
		return nil, fmt.Errorf("failed to get event by id: %w", sql.ErrNoRows)
	}
	return event, nil
}

func (f *fakeEventsRepo) GetEventByShareCode(ctx context.Context, shareCode string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.byCode[shareCode]
	if !ok {
		return nil, fmt.Errorf("failed to get event by share code: %w", sql.ErrNoRows)
	}
	return event, nil
}

func (f *fakeEventsRepo) GetEventsByHost(ctx context.Context, hostID uuid.UUID, pq *utils.Pagination) (*models.EventList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*models.Event
	for _, e := range f.byID {
		if e.HostID == hostID {
			list = append(list, e)
		}
	}
	return &models.EventList{Events: list, TotalCount: len(list)}, nil
}

func (f *fakeEventsRepo) DeleteEvent(ctx context.Context, hostID uuid.UUID, eventID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.byID[eventID]
	if !ok || event.HostID != hostID {
		return fmt.Errorf("no event found to delete")
	}
	delete(f.byID, eventID)
	delete(f.byCode, event.ShareCode)
	return nil
}

func newEventsUC(t *testing.T) (events.UseCase, *fakeEventsRepo) {
	t.Helper()
	repo := newFakeEventsRepo()
	uc := NewEventsUseCase(&config.Config{}, repo, logger.NewWithZap(zaptest.NewLogger(t)))
	return uc, repo
}

func TestCreateEvent_AssignsShareCode(t *testing.T) {
	uc, _ := newEventsUC(t)
	host := &models.User{UserID: uuid.New()}

	event, err := uc.CreateEvent(context.Background(), host, &models.EventCreateInput{Title: "Wedding"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.HostID != host.UserID {
		t.Errorf("host id = %s, want %s", event.HostID, host.UserID)
	}
	if len(event.ShareCode) != shareCodeLength {
		t.Fatalf("share code %q, want length %d", event.ShareCode, shareCodeLength)
	}
	for _, r := range event.ShareCode {
		if !strings.ContainsRune(shareCodeAlphabet, r) {
			t.Errorf("share code contains %q, outside the alphabet", r)
		}
	}
}

func TestCreateEvent_RejectsMissingTitle(t *testing.T) {
	uc, _ := newEventsUC(t)
	host := &models.User{UserID: uuid.New()}

	if _, err := uc.CreateEvent(context.Background(), host, &models.EventCreateInput{}); err == nil {
		t.Fatal("expected validation error for missing title")
	}
}

func TestGetEventByShareCode(t *testing.T) {
	uc, _ := newEventsUC(t)
	host := &models.User{UserID: uuid.New()}

	created, err := uc.CreateEvent(context.Background(), host, &models.EventCreateInput{Title: "Reunion"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	found, err := uc.GetEventByShareCode(context.Background(), created.ShareCode)
	if err != nil || found.EventID != created.EventID {
		t.Fatalf("GetEventByShareCode = %+v (%v), want event %s", found, err, created.EventID)
	}

	if _, err = uc.GetEventByShareCode(context.Background(), "NOPE1234"); !errors.Is(err, events.ErrEventNotFound) {
		t.Errorf("unknown code = %v, want ErrEventNotFound", err)
	}
}

func TestGenerateShareCode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateShareCode()
		if err != nil {
			t.Fatalf("generateShareCode: %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate share code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
