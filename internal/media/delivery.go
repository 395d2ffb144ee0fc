package media

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadMedia() echo.HandlerFunc
	GetJobStatus() echo.HandlerFunc
	ListEventMedia() echo.HandlerFunc
	GetMediaURLs() echo.HandlerFunc
	DeleteMedia() echo.HandlerFunc
}
