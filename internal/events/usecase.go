package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

var ErrEventNotFound = errors.New("event not found")

type UseCase interface {
	CreateEvent(ctx context.Context, host *models.User, input *models.EventCreateInput) (*models.Event, error)
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	GetEventByShareCode(ctx context.Context, shareCode string) (*models.Event, error)
	ListHostEvents(ctx context.Context, host *models.User, pq *utils.Pagination) (*models.EventList, error)
	DeleteEvent(ctx context.Context, host *models.User, eventID uuid.UUID) error
}
