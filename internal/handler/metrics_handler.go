package handler

import (
	"net/http"

	"salesnote/internal/metrics"

	"github.com/labstack/echo/v4"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/metrics", h.snapshot)
	e.GET("/health", h.health)
}

func (h *MetricsHandler) snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.collector.Snapshot())
}

func (h *MetricsHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
