package http

import (
	"github.com/labstack/echo/v4"

	"github.com/skytechmk/webappV.2-sub002/internal/events"
	"github.com/skytechmk/webappV.2-sub002/internal/middleware"
)

func MapEventsRoutes(eventsGroup *echo.Group, h events.Handler, mw *middleware.MiddlewareManager) {
	eventsGroup.GET("/share/:share_code", h.GetEventByShareCode())
	eventsGroup.POST("", h.CreateEvent(), mw.AuthJWTMiddleware())
	eventsGroup.GET("", h.ListMyEvents(), mw.AuthJWTMiddleware())
	eventsGroup.GET("/:event_id", h.GetEventByID())
	eventsGroup.DELETE("/:event_id", h.DeleteEvent(), mw.AuthJWTMiddleware())
}
