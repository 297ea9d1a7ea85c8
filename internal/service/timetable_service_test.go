package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type stubViewer struct {
	rows  []models.AssignmentView
	err   error
	calls int
}

func (s *stubViewer) ListViewByTenant(context.Context, string) ([]models.AssignmentView, error) {
	s.calls++
	return s.rows, s.err
}

type mapCache struct {
	entries map[string][]byte
	sets    int
	dels    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	raw, ok := c.entries[key]
	return raw, ok
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.entries[key] = value
	c.sets++
}

func (c *mapCache) Del(_ context.Context, key string) {
	delete(c.entries, key)
	c.dels++
}

func timetableRows() []models.AssignmentView {
	return []models.AssignmentView{
		{CourseID: "c1", CourseCode: "CS101", RoomID: "r1", TimeslotID: "s1", Day: "Mon", StartTime: "09:00", EndTime: "10:00", Status: "auto", Reason: "auto block 1/1"},
	}
}

func TestListRequiresTenant(t *testing.T) {
	svc := NewTimetableService(&stubViewer{}, nil, 0, nil)

	_, err := svc.List(context.Background(), dto.TimetableQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestListCachesReads(t *testing.T) {
	viewer := &stubViewer{rows: timetableRows()}
	cache := newMapCache()
	svc := NewTimetableService(viewer, cache, time.Minute, nil)

	first, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)
	require.Len(t, first.Rows, 1)
	assert.Equal(t, 1, viewer.calls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, viewer.calls, "second read is served from cache")
}

func TestListWorksWithoutCache(t *testing.T) {
	viewer := &stubViewer{rows: timetableRows()}
	svc := NewTimetableService(viewer, nil, time.Minute, nil)

	resp, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.TenantID)
	require.Len(t, resp.Rows, 1)
}

func TestListDropsCorruptCacheEntry(t *testing.T) {
	viewer := &stubViewer{rows: timetableRows()}
	cache := newMapCache()
	cache.entries["timetable:t1"] = []byte("{not json")
	svc := NewTimetableService(viewer, cache, time.Minute, nil)

	resp, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 1, viewer.calls)
	assert.Equal(t, 1, cache.dels, "corrupt entry is evicted")
}

func TestInvalidate(t *testing.T) {
	viewer := &stubViewer{rows: timetableRows()}
	cache := newMapCache()
	svc := NewTimetableService(viewer, cache, time.Minute, nil)

	_, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)

	svc.Invalidate(context.Background(), "t1")
	_, ok := cache.entries["timetable:t1"]
	assert.False(t, ok)

	_, err = svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 2, viewer.calls, "invalidation forces a database read")
}

func TestListWrapsViewerErrors(t *testing.T) {
	svc := NewTimetableService(&stubViewer{err: assert.AnError}, nil, time.Minute, nil)

	_, err := svc.List(context.Background(), dto.TimetableQuery{TenantID: "t1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
