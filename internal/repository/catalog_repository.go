package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// CourseRepository reads catalog courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository builds repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListByTenant returns all courses for a tenant ordered by code.
func (r *CourseRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Course, error) {
	const query = `SELECT id, tenant_id, code, name, hours_per_week, needs_lab, expected_enrollment, department, cohort, created_at
FROM courses WHERE tenant_id = $1 ORDER BY code ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, tenantID); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// RoomRepository reads catalog rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository builds repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListByTenant returns all rooms for a tenant ordered by name.
func (r *RoomRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Room, error) {
	const query = `SELECT id, tenant_id, name, type, capacity, building, created_at
FROM rooms WHERE tenant_id = $1 ORDER BY name ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, tenantID); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// TimeslotRepository reads raw timeslots.
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository builds repository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

// ListByTenant returns all raw timeslots for a tenant.
func (r *TimeslotRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Timeslot, error) {
	const query = `SELECT id, tenant_id, day, start_time, end_time, created_at
FROM timeslots WHERE tenant_id = $1 ORDER BY created_at ASC, id ASC`
	var slots []models.Timeslot
	if err := r.db.SelectContext(ctx, &slots, query, tenantID); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}
