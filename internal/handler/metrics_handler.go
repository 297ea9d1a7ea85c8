package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/service"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Scrape godoc
// @Summary Prometheus metrics
// @Tags Metrics
// @Produce plain
// @Success 200
// @Router /metrics [get]
func (h *MetricsHandler) Scrape(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
