package dto

// OptimizeRequest submits an asynchronous timetable assignment run.
type OptimizeRequest struct {
	PolicyVersion int    `json:"policyVersion" validate:"omitempty,min=1"`
	Week          string `json:"week" validate:"required"`
	Solver        string `json:"solver" validate:"omitempty,oneof=greedy milp cpsat"`
	GroupSize     int    `json:"groupSize" validate:"omitempty,min=1,max=4"`
	UseForbidden  *bool  `json:"useForbidden"`
	TenantID      string `json:"tenantId"`
}

// OptimizeStatusResponse reports job state to polling callers.
type OptimizeStatusResponse struct {
	JobID   string   `json:"jobId"`
	Status  string   `json:"status"`
	Solver  string   `json:"solver,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Explain *string  `json:"explain,omitempty"`
}

// SchedulerStatusResponse lists solver backend availability.
type SchedulerStatusResponse map[string]bool
