package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type timetableReader interface {
	List(ctx context.Context, query dto.TimetableQuery) (*dto.TimetableResponse, error)
}

// TimetableHandler serves the persisted timetable.
type TimetableHandler struct {
	service timetableReader
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary Get the persisted timetable for a tenant
// @Tags Timetable
// @Produce json
// @Param tenantId query string true "Tenant ID"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	query := dto.TimetableQuery{TenantID: c.Query("tenantId")}
	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
