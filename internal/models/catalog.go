package models

import "time"

// Course is a catalog course as stored, immutable during a run.
type Course struct {
	ID                 string    `db:"id" json:"id"`
	TenantID           string    `db:"tenant_id" json:"tenant_id"`
	Code               string    `db:"code" json:"code"`
	Name               string    `db:"name" json:"name"`
	HoursPerWeek       int       `db:"hours_per_week" json:"hours_per_week"`
	NeedsLab           bool      `db:"needs_lab" json:"needs_lab"`
	ExpectedEnrollment int       `db:"expected_enrollment" json:"expected_enrollment"`
	Department         *string   `db:"department" json:"department,omitempty"`
	Cohort             *string   `db:"cohort" json:"cohort,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Room is a physical room available to a tenant.
type Room struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Building  *string   `db:"building" json:"building,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Timeslot is a raw weekly slot as imported; day/start/end are uncleaned
// source strings and are canonicalized by the scheduler.
type Timeslot struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
