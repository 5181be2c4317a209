package server

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	//監視用は認証なし
	h.Metrics.RegisterRoutes(e)

	h.LineItems.RegisterRoutes(e, mw...)
	h.Orders.RegisterRoutes(e, mw...)
	h.Addresses.RegisterRoutes(e, mw...)
}
