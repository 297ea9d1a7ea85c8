package dto

import "github.com/noah-isme/uni-timetable-api/internal/models"

// TimetableQuery selects whose timetable to read.
type TimetableQuery struct {
	TenantID string `form:"tenantId" json:"tenantId"`
}

// TimetableResponse is the persisted timetable for a tenant.
type TimetableResponse struct {
	TenantID string                  `json:"tenantId"`
	Rows     []models.AssignmentView `json:"rows"`
}
