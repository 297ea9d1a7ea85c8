package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
)

type stubReporter struct {
	availability dto.SchedulerStatusResponse
}

func (s *stubReporter) BackendAvailability() dto.SchedulerStatusResponse {
	return s.availability
}

func TestSchedulerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &SchedulerStatusHandler{service: &stubReporter{
		availability: dto.SchedulerStatusResponse{"greedy": true, "milp": false, "cpsat": false},
	}}
	r := gin.New()
	r.GET("/scheduler/status", h.Status)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scheduler/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["greedy"])
	assert.Equal(t, false, data["milp"])
	assert.Equal(t, false, data["cpsat"])
}
