package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

func TestQuotaEnforcer_AllowsWithinLimit(t *testing.T) {
	store := newFakeStore(&models.StorageQuota{UsedBytes: 5 << 20, LimitBytes: 10 << 20})
	enforcer := NewQuotaEnforcer(store)
	owner := uuid.New()

	if err := enforcer.Check(context.Background(), &owner, 4<<20); err != nil {
		t.Errorf("expected allow at 9/10MB, got %v", err)
	}
}

func TestQuotaEnforcer_DeniesOverLimit(t *testing.T) {
	store := newFakeStore(&models.StorageQuota{UsedBytes: 5 << 20, LimitBytes: 10 << 20})
	enforcer := NewQuotaEnforcer(store)
	owner := uuid.New()

	err := enforcer.Check(context.Background(), &owner, 6<<20)
	if !IsQuotaExceeded(err) {
		t.Errorf("expected quota exceeded at 11/10MB, got %v", err)
	}
}

func TestQuotaEnforcer_ExactFitIsAllowed(t *testing.T) {
	store := newFakeStore(&models.StorageQuota{UsedBytes: 5 << 20, LimitBytes: 10 << 20})
	enforcer := NewQuotaEnforcer(store)
	owner := uuid.New()

	if err := enforcer.Check(context.Background(), &owner, 5<<20); err != nil {
		t.Errorf("expected exact fit to pass, got %v", err)
	}
}

func TestQuotaEnforcer_UnlimitedSkipsArithmetic(t *testing.T) {
	store := newFakeStore(&models.StorageQuota{UsedBytes: 1 << 40, LimitBytes: models.UnlimitedQuota})
	enforcer := NewQuotaEnforcer(store)
	owner := uuid.New()

	if err := enforcer.Check(context.Background(), &owner, 1<<30); err != nil {
		t.Errorf("unlimited account was denied: %v", err)
	}
}

func TestQuotaEnforcer_NilOwnerBypasses(t *testing.T) {
	store := newFakeStore(nil)
	enforcer := NewQuotaEnforcer(store)

	if err := enforcer.Check(context.Background(), nil, 1<<30); err != nil {
		t.Errorf("anonymous upload was denied: %v", err)
	}
	if store.quotaCalls != 0 {
		t.Errorf("quota source consulted %d times for anonymous upload", store.quotaCalls)
	}
}
