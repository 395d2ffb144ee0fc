package media

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

type RedisRepository interface {
	PublishMediaEvent(ctx context.Context, event *models.MediaEvent) error
	InvalidateEventMedia(ctx context.Context, eventID uuid.UUID) error
	GetEventMediaCtx(ctx context.Context, eventID uuid.UUID) (*models.MediaList, error)
	SetEventMediaCtx(ctx context.Context, eventID uuid.UUID, list *models.MediaList, ttl time.Duration) error
}
