package usecase

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

// Ambiguous characters (0/O, 1/I) are excluded so codes survive being read
// aloud at a venue.
const shareCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const shareCodeLength = 8

type eventsUC struct {
	cfg        *config.Config
	eventsRepo events.Repository
	logger     logger.Logger
}

func NewEventsUseCase(cfg *config.Config, eventsRepo events.Repository, log logger.Logger) events.UseCase {
	return &eventsUC{
		cfg:        cfg,
		eventsRepo: eventsRepo,
		logger:     log,
	}
}

func (e *eventsUC) CreateEvent(ctx context.Context, host *models.User, input *models.EventCreateInput) (*models.Event, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		e.logger.Errorf("CreateEvent - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}

	shareCode, err := generateShareCode()
	if err != nil {
		e.logger.Errorf("CreateEvent - generateShareCode error: %v", err)
		return nil, err
	}

	event := &models.Event{
		HostID:    host.UserID,
		Title:     input.Title,
		ShareCode: shareCode,
		EventDate: input.EventDate,
	}
	created, err := e.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		e.logger.Errorf("CreateEvent - CreateEvent error: %v", err)
		return nil, err
	}
	return created, nil
}

func (e *eventsUC) GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	event, err := e.eventsRepo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		e.logger.Errorf("GetEventByID - GetEventByID error: %v", err)
		return nil, events.ErrEventNotFound
	}
	return event, nil
}

func (e *eventsUC) GetEventByShareCode(ctx context.Context, shareCode string) (*models.Event, error) {
	event, err := e.eventsRepo.GetEventByShareCode(ctx, shareCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		e.logger.Errorf("GetEventByShareCode - GetEventByShareCode error: %v", err)
		return nil, events.ErrEventNotFound
	}
	return event, nil
}

func (e *eventsUC) ListHostEvents(ctx context.Context, host *models.User, pq *utils.Pagination) (*models.EventList, error) {
	list, err := e.eventsRepo.GetEventsByHost(ctx, host.UserID, pq)
	if err != nil {
		e.logger.Errorf("ListHostEvents - GetEventsByHost error: %v", err)
		return nil, err
	}
	return list, nil
}

func (e *eventsUC) DeleteEvent(ctx context.Context, host *models.User, eventID uuid.UUID) error {
	if err := e.eventsRepo.DeleteEvent(ctx, host.UserID, eventID); err != nil {
		e.logger.Errorf("DeleteEvent - DeleteEvent error: %v", err)
		return err
	}
	return nil
}

func generateShareCode() (string, error) {
	code := make([]byte, shareCodeLength)
	max := big.NewInt(int64(len(shareCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		code[i] = shareCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
