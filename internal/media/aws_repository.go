package media

import (
	"context"
	"time"
)

type AWSRepository interface {
	PutObject(ctx context.Context, localPath, key, contentType string) error
	RemoveObject(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
