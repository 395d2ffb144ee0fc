package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

type UseCase interface {
	Register(ctx context.Context, user *models.User) (*models.UserWithToken, error)
	Login(ctx context.Context, user *models.User) (*models.UserWithToken, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error)
}
