package models

import "time"

// OptimizeJobStatus is the lifecycle state of an assignment run.
type OptimizeJobStatus string

const (
	JobStatusQueued    OptimizeJobStatus = "queued"
	JobStatusRunning   OptimizeJobStatus = "running"
	JobStatusCompleted OptimizeJobStatus = "completed"
	JobStatusFailed    OptimizeJobStatus = "failed"
	JobStatusNotFound  OptimizeJobStatus = "not_found"
)

// OptimizeJob tracks one asynchronous assignment run. Completed and failed
// are terminal; there is no cancellation.
type OptimizeJob struct {
	ID          string            `json:"job_id"`
	Status      OptimizeJobStatus `json:"status"`
	Solver      string            `json:"solver"`
	TenantID    string            `json:"tenant_id,omitempty"`
	Score       *float64          `json:"score,omitempty"`
	Explain     *string           `json:"explain,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	FinishedAt  *time.Time        `json:"finished_at,omitempty"`
}
