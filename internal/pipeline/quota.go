package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

// QuotaSource reads an owner's consumed and allowed storage.
type QuotaSource interface {
	GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error)
}

// QuotaEnforcer admits or denies a job before any transcode or upload work is
// spent on it.
type QuotaEnforcer struct {
	quotas QuotaSource
}

func NewQuotaEnforcer(quotas QuotaSource) *QuotaEnforcer {
	return &QuotaEnforcer{quotas: quotas}
}

// Check denies with ErrQuotaExceeded when used+size would exceed the owner's
// limit. Anonymous jobs (nil owner) and unlimited owners always pass.
func (e *QuotaEnforcer) Check(ctx context.Context, ownerID *uuid.UUID, sizeBytes int64) error {
	if ownerID == nil {
		return nil
	}
	quota, err := e.quotas.GetUserQuota(ctx, *ownerID)
	if err != nil {
		return errors.Wrap(err, "failed to read storage quota")
	}
	if quota.Unlimited() {
		return nil
	}
	if quota.UsedBytes+sizeBytes > quota.LimitBytes {
		return errors.Wrapf(ErrQuotaExceeded, "used %d of %d bytes, upload needs %d more",
			quota.UsedBytes, quota.LimitBytes, sizeBytes)
	}
	return nil
}
