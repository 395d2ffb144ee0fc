package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UnlimitedQuota disables the per-user storage ceiling.
const UnlimitedQuota int64 = -1

type User struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id" redis:"user_id" validate:"omitempty"`
	Username     string    `json:"username" db:"username" redis:"username" validate:"required,lte=30"`
	Email        string    `json:"email" db:"email" redis:"email" validate:"required,email,lte=60"`
	Password     string    `json:"password,omitempty" db:"password" redis:"password" validate:"required,min=8"`
	Fullname     string    `json:"fullname" db:"fullname" redis:"fullname" validate:"required,lte=60"`
	StorageQuota int64     `json:"storage_quota_bytes" db:"storage_quota_bytes" redis:"storage_quota_bytes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" redis:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" redis:"updated_at"`
}

// StorageQuota is the consumed-vs-allowed snapshot used for admission checks.
type StorageQuota struct {
	UsedBytes  int64 `json:"used_bytes" db:"used_bytes"`
	LimitBytes int64 `json:"limit_bytes" db:"limit_bytes"`
}

func (q *StorageQuota) Unlimited() bool {
	return q.LimitBytes == UnlimitedQuota
}

type UserWithToken struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (u *User) SanitizePassword() {
	u.Password = ""
}

func (u *User) HashPassword() error {
	hashedPass, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %v", err)
	}
	u.Password = string(hashedPass)
	return nil
}

func (u *User) ComparePassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return fmt.Errorf("error comparing password: %v", err)
	}
	return nil
}

func (u *User) PrepareCreate() error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if !isValidEmail(u.Email) {
		return fmt.Errorf("invalid email format")
	}

	u.Password = strings.TrimSpace(u.Password)
	if err := u.HashPassword(); err != nil {
		return err
	}
	return nil
}

func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	match, err := regexp.MatchString(pattern, email)
	return err == nil && match
}
