package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// AssignmentRepository persists generated timetable plans. It is the plan
// sink: each successful run fully replaces the tenant's auto rows while
// leaving human-edited rows untouched.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository builds repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ReplaceAuto deletes the tenant's auto-generated assignments and inserts
// the new plan in one transaction. Rows with other statuses are out of
// reach of this method.
func (r *AssignmentRepository) ReplaceAuto(ctx context.Context, tenantID string, rows []models.Assignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace assignments: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM assignments WHERE tenant_id = $1 AND status = $2`,
		tenantID, models.AssignmentStatusAuto,
	); err != nil {
		return fmt.Errorf("delete auto assignments: %w", err)
	}

	const insert = `INSERT INTO assignments (id, tenant_id, course_id, room_id, timeslot_id, status, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now().UTC()
	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.Status == "" {
			row.Status = models.AssignmentStatusAuto
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		if _, err = tx.ExecContext(ctx, insert,
			row.ID, row.TenantID, row.CourseID, row.RoomID, row.TimeslotID, row.Status, row.Reason, row.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace assignments: %w", err)
	}
	return nil
}

// ListViewByTenant returns the persisted timetable joined with catalog
// labels, ordered for display.
func (r *AssignmentRepository) ListViewByTenant(ctx context.Context, tenantID string) ([]models.AssignmentView, error) {
	const query = `SELECT a.course_id, c.code AS course_code, c.name AS course_name,
       a.room_id, r.name AS room_name,
       a.timeslot_id, t.day, t.start_time, t.end_time,
       a.status, a.reason
FROM assignments a
JOIN courses c ON c.id = a.course_id
JOIN rooms r ON r.id = a.room_id
JOIN timeslots t ON t.id = a.timeslot_id
WHERE a.tenant_id = $1
ORDER BY t.day ASC, t.start_time ASC, c.code ASC`
	var rows []models.AssignmentView
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("list assignment view: %w", err)
	}
	return rows, nil
}
