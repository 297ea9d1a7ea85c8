package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type optimizer interface {
	Submit(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeStatusResponse, error)
	GetStatus(jobID string) *dto.OptimizeStatusResponse
}

// OptimizeHandler exposes the asynchronous assignment run endpoints.
type OptimizeHandler struct {
	service optimizer
}

// NewOptimizeHandler constructs the handler.
func NewOptimizeHandler(svc *service.OptimizeService) *OptimizeHandler {
	return &OptimizeHandler{service: svc}
}

// Submit godoc
// @Summary Submit an asynchronous timetable assignment run
// @Description Returns immediately with a job ID; poll GET /optimize/{id} for the outcome.
// @Tags Optimize
// @Accept json
// @Produce json
// @Param payload body dto.OptimizeRequest true "Optimize payload"
// @Success 202 {object} response.Envelope
// @Router /optimize [post]
func (h *OptimizeHandler) Submit(c *gin.Context) {
	var req dto.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid optimize payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}

// Status godoc
// @Summary Poll an assignment run
// @Tags Optimize
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /optimize/{id} [get]
func (h *OptimizeHandler) Status(c *gin.Context) {
	result := h.service.GetStatus(c.Param("id"))
	response.JSON(c, http.StatusOK, result, nil)
}
