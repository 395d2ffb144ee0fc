package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type mediaRepo struct {
	db *sqlx.DB
}

func NewMediaRepo(db *sqlx.DB) media.Repository {
	return &mediaRepo{
		db: db,
	}
}

func (m *mediaRepo) CreateMedia(ctx context.Context, mediaFile *models.MediaFile) (*models.MediaFile, error) {
	created := &models.MediaFile{}
	if err := m.db.QueryRowxContext(
		ctx,
		createMediaQuery,
		mediaFile.MediaID,
		mediaFile.EventID,
		mediaFile.OwnerID,
		mediaFile.Kind,
		mediaFile.FileName,
		mediaFile.FileSize,
		mediaFile.ContentType,
		mediaFile.S3Key,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}
	return created, nil
}

func (m *mediaRepo) FinalizeMedia(ctx context.Context, mediaID uuid.UUID, previewKey string) error {
	res, err := m.db.ExecContext(ctx, finalizeMediaQuery, mediaID, previewKey)
	if err != nil {
		return fmt.Errorf("failed to finalize media: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no processing media row found to finalize")
	}
	return nil
}

func (m *mediaRepo) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	res, err := m.db.ExecContext(ctx, deleteMediaQuery, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no media found to delete")
	}
	return nil
}

func (m *mediaRepo) GetMediaByID(ctx context.Context, mediaID uuid.UUID) (*models.MediaFile, error) {
	mediaFile := &models.MediaFile{}
	if err := m.db.QueryRowxContext(
		ctx,
		getMediaByIDQuery,
		mediaID,
	).StructScan(mediaFile); err != nil {
		return nil, fmt.Errorf("failed to get media by id: %w", err)
	}
	return mediaFile, nil
}

func (m *mediaRepo) GetEventMedia(ctx context.Context, eventID uuid.UUID, pq *utils.Pagination) (*models.MediaList, error) {
	var totalCount int
	if err := m.db.GetContext(
		ctx,
		&totalCount,
		getTotalEventMediaQuery,
		eventID,
	); err != nil {
		return nil, fmt.Errorf("failed to get total media count: %w", err)
	}
	if totalCount == 0 {
		return &models.MediaList{
			Media:      make([]*models.MediaFile, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := m.db.QueryxContext(
		ctx,
		getEventMediaQuery,
		eventID,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event media: %w", err)
	}
	defer rows.Close()
	var mediaFiles = make([]*models.MediaFile, 0, pq.GetSize())
	for rows.Next() {
		var mediaFile models.MediaFile
		if err = rows.StructScan(&mediaFile); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		mediaFiles = append(mediaFiles, &mediaFile)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan media rows: %w", err)
	}
	return &models.MediaList{
		Media:      mediaFiles,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (m *mediaRepo) GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error) {
	quota := &models.StorageQuota{}
	if err := m.db.QueryRowxContext(
		ctx,
		getUserQuotaQuery,
		userID,
	).StructScan(quota); err != nil {
		return nil, fmt.Errorf("failed to get user quota: %w", err)
	}
	return quota, nil
}

func (m *mediaRepo) GetEventHost(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	var hostID uuid.UUID
	if err := m.db.GetContext(ctx, &hostID, getEventHostQuery, eventID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get event host: %w", err)
	}
	return hostID, nil
}
