package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// TenantRepository resolves and bootstraps tenants.
type TenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository builds repository.
func NewTenantRepository(db *sqlx.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// FindByID loads a tenant by primary key.
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	const query = `SELECT id, name, enabled, created_at FROM tenants WHERE id = $1`
	var tenant models.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, id); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FirstEnabled returns the oldest enabled tenant, sql.ErrNoRows when none.
func (r *TenantRepository) FirstEnabled(ctx context.Context) (*models.Tenant, error) {
	const query = `SELECT id, name, enabled, created_at FROM tenants WHERE enabled = true ORDER BY created_at ASC LIMIT 1`
	var tenant models.Tenant
	if err := r.db.GetContext(ctx, &tenant, query); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// EnsureDemo creates a demo tenant with a small seed catalog so an empty
// database can still serve an assignment run end to end.
func (r *TenantRepository) EnsureDemo(ctx context.Context) (*models.Tenant, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin demo bootstrap: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	tenant := &models.Tenant{ID: uuid.NewString(), Name: "Demo University", Enabled: true, CreatedAt: now}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO tenants (id, name, enabled, created_at) VALUES ($1, $2, $3, $4)`,
		tenant.ID, tenant.Name, tenant.Enabled, tenant.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert demo tenant: %w", err)
	}

	rooms := []struct {
		name     string
		roomType string
		capacity int
	}{
		{"Lecture Hall A", "classroom", 60},
		{"Room 101", "classroom", 30},
		{"Computer Lab 1", "lab", 24},
	}
	for _, room := range rooms {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO rooms (id, tenant_id, name, type, capacity, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), tenant.ID, room.name, room.roomType, room.capacity, now,
		); err != nil {
			return nil, fmt.Errorf("insert demo room: %w", err)
		}
	}

	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri"} {
		for period := 1; period <= 6; period++ {
			start := fmt.Sprintf("%02d:00", 8+period)
			end := fmt.Sprintf("%02d:00", 9+period)
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO timeslots (id, tenant_id, day, start_time, end_time, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.NewString(), tenant.ID, day, start, end, now,
			); err != nil {
				return nil, fmt.Errorf("insert demo timeslot: %w", err)
			}
		}
	}

	courses := []struct {
		code       string
		name       string
		hours      int
		needsLab   bool
		enrollment int
	}{
		{"CS101", "Introduction to Programming", 3, true, 22},
		{"MATH201", "Linear Algebra", 3, false, 45},
		{"ENG110", "Academic Writing", 2, false, 28},
	}
	for _, course := range courses {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO courses (id, tenant_id, code, name, hours_per_week, needs_lab, expected_enrollment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), tenant.ID, course.code, course.name, course.hours, course.needsLab, course.enrollment, now,
		); err != nil {
			return nil, fmt.Errorf("insert demo course: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit demo bootstrap: %w", err)
	}
	return tenant, nil
}
