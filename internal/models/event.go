package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a media container: guests upload into it, galleries read from it.
type Event struct {
	EventID   uuid.UUID `json:"event_id" db:"event_id" redis:"event_id" validate:"omitempty"`
	HostID    uuid.UUID `json:"host_id" db:"host_id" redis:"host_id" validate:"omitempty"`
	Title     string    `json:"title" db:"title" redis:"title" validate:"required,lte=120"`
	ShareCode string    `json:"share_code" db:"share_code" redis:"share_code" validate:"omitempty,lte=16"`
	EventDate time.Time `json:"event_date" db:"event_date" redis:"event_date" validate:"omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" redis:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" redis:"updated_at"`
}

type EventCreateInput struct {
	Title     string    `json:"title" validate:"required,lte=120"`
	EventDate time.Time `json:"event_date" validate:"omitempty"`
}

type EventList struct {
	Events     []*Event `json:"events"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}
