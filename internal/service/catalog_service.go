package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
)

type courseLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.Course, error)
}

type roomLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.Room, error)
}

type timeslotLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.Timeslot, error)
}

// CatalogSnapshot is a read-only projection of one tenant's catalog, built
// fresh per assignment run and discarded afterwards.
type CatalogSnapshot struct {
	Courses []scheduler.Course
	Rooms   []scheduler.Room
	Slots   []scheduler.Slot
}

// CatalogService assembles scheduling snapshots from stored catalog rows.
// Raw timeslots that fail calendar normalization are dropped, not errored.
type CatalogService struct {
	courses courseLister
	rooms   roomLister
	slots   timeslotLister
	logger  *zap.Logger
}

// NewCatalogService wires the catalog readers.
func NewCatalogService(courses courseLister, rooms roomLister, slots timeslotLister, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{courses: courses, rooms: rooms, slots: slots, logger: logger}
}

// Snapshot loads and normalizes the tenant's courses, rooms and timeslots.
func (s *CatalogService) Snapshot(ctx context.Context, tenantID string) (*CatalogSnapshot, error) {
	courseRows, err := s.courses.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roomRows, err := s.rooms.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	slotRows, err := s.slots.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	snapshot := &CatalogSnapshot{
		Courses: make([]scheduler.Course, 0, len(courseRows)),
		Rooms:   make([]scheduler.Room, 0, len(roomRows)),
		Slots:   make([]scheduler.Slot, 0, len(slotRows)),
	}

	for _, row := range courseRows {
		snapshot.Courses = append(snapshot.Courses, scheduler.Course{
			ID:                 row.ID,
			TenantID:           row.TenantID,
			Code:               row.Code,
			Name:               row.Name,
			HoursPerWeek:       row.HoursPerWeek,
			NeedsLab:           row.NeedsLab,
			ExpectedEnrollment: row.ExpectedEnrollment,
			Department:         deref(row.Department),
			Cohort:             deref(row.Cohort),
		})
	}

	for _, row := range roomRows {
		snapshot.Rooms = append(snapshot.Rooms, scheduler.Room{
			ID:       row.ID,
			TenantID: row.TenantID,
			Name:     row.Name,
			Type:     row.Type,
			Capacity: row.Capacity,
			Building: deref(row.Building),
		})
	}

	dropped := 0
	for _, row := range slotRows {
		window, ok := scheduler.NormalizeSlot(row.Day, row.StartTime, row.EndTime)
		if !ok {
			dropped++
			continue
		}
		snapshot.Slots = append(snapshot.Slots, scheduler.Slot{
			ID:       row.ID,
			TenantID: row.TenantID,
			Day:      window.Day,
			Period:   window.Period,
			Start:    window.Start,
			End:      window.End,
		})
	}
	if dropped > 0 {
		s.logger.Sugar().Debugw("dropped unnormalizable timeslots", "tenant_id", tenantID, "dropped", dropped)
	}

	return snapshot, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
