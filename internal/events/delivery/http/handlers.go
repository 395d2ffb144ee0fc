package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type eventsHandler struct {
	eventsUC events.UseCase
	logger   logger.Logger
}

func NewEventsHandler(eventsUC events.UseCase, log logger.Logger) events.Handler {
	return &eventsHandler{
		eventsUC: eventsUC,
		logger:   log,
	}
}

func (h *eventsHandler) CreateEvent() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.GetUserFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		input := &models.EventCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		event, err := h.eventsUC.CreateEvent(c.Request().Context(), user, input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, event)
	}
}

func (h *eventsHandler) GetEventByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := uuid.Parse(c.Param("event_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event id"})
		}
		event, err := h.eventsUC.GetEventByID(c.Request().Context(), eventID)
		if err != nil {
			if errors.Is(err, events.ErrEventNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Event not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, event)
	}
}

func (h *eventsHandler) GetEventByShareCode() echo.HandlerFunc {
	return func(c echo.Context) error {
		shareCode := c.Param("share_code")
		if shareCode == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Share code is required"})
		}
		event, err := h.eventsUC.GetEventByShareCode(c.Request().Context(), shareCode)
		if err != nil {
			if errors.Is(err, events.ErrEventNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Event not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, event)
	}
}

func (h *eventsHandler) ListMyEvents() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.GetUserFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.eventsUC.ListHostEvents(c.Request().Context(), user, pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *eventsHandler) DeleteEvent() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.GetUserFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		eventID, err := uuid.Parse(c.Param("event_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event id"})
		}
		if err = h.eventsUC.DeleteEvent(c.Request().Context(), user, eventID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Event deleted successfully"})
	}
}
