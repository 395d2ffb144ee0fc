package http

import (
	"github.com/labstack/echo/v4"

	"github.com/skytechmk/webappV.2-sub002/internal/media"
	"github.com/skytechmk/webappV.2-sub002/internal/middleware"
)

func MapMediaRoutes(mediaGroup *echo.Group, h media.Handler, mw *middleware.MiddlewareManager) {
	mediaGroup.POST("/upload", h.UploadMedia(), mw.OptionalAuthJWTMiddleware())
	mediaGroup.GET("/jobs/:job_id", h.GetJobStatus())
	mediaGroup.GET("/event/:event_id", h.ListEventMedia())
	mediaGroup.GET("/:media_id/urls", h.GetMediaURLs())
	mediaGroup.DELETE("/:media_id", h.DeleteMedia(), mw.AuthJWTMiddleware())
}
