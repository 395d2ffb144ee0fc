package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type eventsRepo struct {
	db *sqlx.DB
}

func NewEventsRepo(db *sqlx.DB) events.Repository {
	return &eventsRepo{
		db: db,
	}
}

func (e *eventsRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	created := &models.Event{}
	if err := e.db.QueryRowxContext(
		ctx,
		createEventQuery,
		event.HostID,
		event.Title,
		event.ShareCode,
		event.EventDate,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (e *eventsRepo) GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	if err := e.db.QueryRowxContext(
		ctx,
		getEventByIDQuery,
		eventID,
	).StructScan(event); err != nil {
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

func (e *eventsRepo) GetEventByShareCode(ctx context.Context, shareCode string) (*models.Event, error) {
	event := &models.Event{}
	if err := e.db.QueryRowxContext(
		ctx,
		getEventByShareCodeQuery,
		shareCode,
	).StructScan(event); err != nil {
		return nil, fmt.Errorf("failed to get event by share code: %w", err)
	}
	return event, nil
}

func (e *eventsRepo) GetEventsByHost(ctx context.Context, hostID uuid.UUID, pq *utils.Pagination) (*models.EventList, error) {
	var totalCount int
	if err := e.db.GetContext(
		ctx,
		&totalCount,
		getTotalEventsByHostQuery,
		hostID,
	); err != nil {
		return nil, fmt.Errorf("failed to get total events count: %w", err)
	}
	if totalCount == 0 {
		return &models.EventList{
			Events:     make([]*models.Event, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := e.db.QueryxContext(
		ctx,
		getEventsByHostQuery,
		hostID,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get events by host: %w", err)
	}
	defer rows.Close()
	var eventList = make([]*models.Event, 0, pq.GetSize())
	for rows.Next() {
		var event models.Event
		if err = rows.StructScan(&event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		eventList = append(eventList, &event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan event rows: %w", err)
	}
	return &models.EventList{
		Events:     eventList,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (e *eventsRepo) DeleteEvent(ctx context.Context, hostID uuid.UUID, eventID uuid.UUID) error {
	res, err := e.db.ExecContext(
		ctx,
		deleteEventQuery,
		eventID,
		hostID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no event found to delete")
	}
	return nil
}
