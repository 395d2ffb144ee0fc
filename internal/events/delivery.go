package events

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateEvent() echo.HandlerFunc
	GetEventByID() echo.HandlerFunc
	GetEventByShareCode() echo.HandlerFunc
	ListMyEvents() echo.HandlerFunc
	DeleteEvent() echo.HandlerFunc
}
