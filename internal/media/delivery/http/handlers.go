package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
	"github.com/skytechmk/webappV.2-sub002/pkg/utils"
)

type mediaHandler struct {
	mediaUC  media.UseCase
	eventsUC events.UseCase
	logger   logger.Logger
}

func NewMediaHandler(mediaUC media.UseCase, eventsUC events.UseCase, log logger.Logger) media.Handler {
	return &mediaHandler{
		mediaUC:  mediaUC,
		eventsUC: eventsUC,
		logger:   log,
	}
}

// UploadMedia accepts a multipart upload from a logged-in user (event_id
// field) or from a guest carrying the event's share code. The response is a
// receipt; processing continues in the background.
func (h *mediaHandler) UploadMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is required"})
		}

		var ownerID *uuid.UUID
		var eventID uuid.UUID

		user, userErr := utils.GetUserFromCtx(c.Request().Context())
		if userErr == nil {
			ownerID = &user.UserID
		}

		if shareCode := c.FormValue("share_code"); shareCode != "" {
			event, err := h.eventsUC.GetEventByShareCode(c.Request().Context(), shareCode)
			if err != nil {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Invalid share code"})
			}
			eventID = event.EventID
		} else {
			if ownerID == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Login or a share code is required"})
			}
			eventID, err = uuid.Parse(c.FormValue("event_id"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event id"})
			}
		}

		src, err := fileHeader.Open()
		if err != nil {
			h.logger.Errorf("UploadMedia - FormFile open error: %v", err)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read file"})
		}
		defer src.Close()

		receipt, _, err := h.mediaUC.SubmitUpload(c.Request().Context(), &models.MediaUploadInput{
			EventID:     eventID,
			OwnerID:     ownerID,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			File:        src,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, receipt)
	}
}

func (h *mediaHandler) GetJobStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		}
		record, err := h.mediaUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, media.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, record)
	}
}

func (h *mediaHandler) ListEventMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := uuid.Parse(c.Param("event_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event id"})
		}
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.mediaUC.ListEventMedia(c.Request().Context(), eventID, pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *mediaHandler) GetMediaURLs() echo.HandlerFunc {
	return func(c echo.Context) error {
		mediaID, err := uuid.Parse(c.Param("media_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid media id"})
		}
		urls, err := h.mediaUC.GetMediaURLs(c.Request().Context(), mediaID)
		if err != nil {
			if errors.Is(err, media.ErrMediaNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Media not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, urls)
	}
}

func (h *mediaHandler) DeleteMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.GetUserFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		mediaID, err := uuid.Parse(c.Param("media_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid media id"})
		}
		if err = h.mediaUC.DeleteMedia(c.Request().Context(), user, mediaID); err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Media not found"})
			case errors.Is(err, media.ErrNotAllowed):
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
			default:
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Media deleted successfully"})
	}
}
