package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type Repository interface {
	CreateMedia(ctx context.Context, media *models.MediaFile) (*models.MediaFile, error)
	FinalizeMedia(ctx context.Context, mediaID uuid.UUID, previewKey string) error
	DeleteMedia(ctx context.Context, mediaID uuid.UUID) error
	GetMediaByID(ctx context.Context, mediaID uuid.UUID) (*models.MediaFile, error)
	GetEventMedia(ctx context.Context, eventID uuid.UUID, pq *utils.Pagination) (*models.MediaList, error)
	GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error)
	GetEventHost(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
}
