package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skytechmk/webappV.2-sub002/internal/auth"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
)

type authRepo struct {
	db *sqlx.DB
}

func NewAuthRepo(db *sqlx.DB) auth.Repository {
	return &authRepo{
		db: db,
	}
}

func (a *authRepo) Register(ctx context.Context, user *models.User) (*models.User, error) {
	createdUser := &models.User{}
	if err := a.db.QueryRowxContext(
		ctx,
		createUserQuery,
		user.Fullname,
		user.Email,
		user.Password,
		user.Username,
		user.StorageQuota,
	).StructScan(createdUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return createdUser, nil
}

func (a *authRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := a.db.QueryRowxContext(
		ctx,
		getUserQuery,
		userID,
	).StructScan(user); err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (a *authRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := a.db.QueryRowxContext(
		ctx,
		getUserByEmailQuery,
		email,
	).StructScan(user); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (a *authRepo) GetUserQuota(ctx context.Context, userID uuid.UUID) (*models.StorageQuota, error) {
	quota := &models.StorageQuota{}
	if err := a.db.QueryRowxContext(
		ctx,
		getUserQuotaQuery,
		userID,
	).StructScan(quota); err != nil {
		return nil, fmt.Errorf("failed to get user quota: %w", err)
	}
	return quota, nil
}
