package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

type mediaRedisRepo struct {
	redisClient *redis.Client
}

func NewMediaRedisRepo(redisClient *redis.Client) media.RedisRepository {
	return &mediaRedisRepo{
		redisClient: redisClient,
	}
}

func mediaChannelKey(eventID uuid.UUID) string {
	return fmt.Sprintf("events:%s:media", eventID)
}

func mediaCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:media:%s", eventID)
}

func (m *mediaRedisRepo) PublishMediaEvent(ctx context.Context, event *models.MediaEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal media event: %w", err)
	}
	if err = m.redisClient.Publish(ctx, mediaChannelKey(event.EventID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish media event: %w", err)
	}
	return nil
}

func (m *mediaRedisRepo) InvalidateEventMedia(ctx context.Context, eventID uuid.UUID) error {
	if err := m.redisClient.Del(ctx, mediaCacheKey(eventID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate media cache: %w", err)
	}
	return nil
}

func (m *mediaRedisRepo) GetEventMediaCtx(ctx context.Context, eventID uuid.UUID) (*models.MediaList, error) {
	data, err := m.redisClient.Get(ctx, mediaCacheKey(eventID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get media cache: %w", err)
	}
	list := &models.MediaList{}
	if err = json.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media cache: %w", err)
	}
	return list, nil
}

func (m *mediaRedisRepo) SetEventMediaCtx(ctx context.Context, eventID uuid.UUID, list *models.MediaList, ttl time.Duration) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal media list: %w", err)
	}
	if err = m.redisClient.Set(ctx, mediaCacheKey(eventID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set media cache: %w", err)
	}
	return nil
}
