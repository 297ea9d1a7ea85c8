package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type backendReporter interface {
	BackendAvailability() dto.SchedulerStatusResponse
}

// SchedulerStatusHandler reports solver backend availability.
type SchedulerStatusHandler struct {
	service backendReporter
}

// NewSchedulerStatusHandler constructs the handler.
func NewSchedulerStatusHandler(svc *service.OptimizeService) *SchedulerStatusHandler {
	return &SchedulerStatusHandler{service: svc}
}

// Status godoc
// @Summary List solver backends and their availability
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/status [get]
func (h *SchedulerStatusHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.BackendAvailability(), nil)
}
