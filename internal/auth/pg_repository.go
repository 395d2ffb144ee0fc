package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

type Repository interface {
	Register(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error)
}
