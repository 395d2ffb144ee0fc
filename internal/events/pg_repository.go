package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type Repository interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	GetEventByShareCode(ctx context.Context, shareCode string) (*models.Event, error)
	GetEventsByHost(ctx context.Context, hostID uuid.UUID, pq *utils.Pagination) (*models.EventList, error)
	DeleteEvent(ctx context.Context, hostID uuid.UUID, eventID uuid.UUID) error
}
