package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type assignmentViewer interface {
	ListViewByTenant(ctx context.Context, tenantID string) ([]models.AssignmentView, error)
}

type timetableCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Del(ctx context.Context, key string)
}

// TimetableService serves the persisted timetable with a read-through
// cache. The cache is invalidated every time a run persists a new plan.
type TimetableService struct {
	assignments assignmentViewer
	cache       timetableCache
	ttl         time.Duration
	logger      *zap.Logger
}

// NewTimetableService wires the read side. cache may be nil.
func NewTimetableService(assignments assignmentViewer, cache timetableCache, ttl time.Duration, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TimetableService{assignments: assignments, cache: cache, ttl: ttl, logger: logger}
}

// List returns the tenant's persisted assignments, cached.
func (s *TimetableService) List(ctx context.Context, query dto.TimetableQuery) (*dto.TimetableResponse, error) {
	if query.TenantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tenantId is required")
	}

	key := cacheKey(query.TenantID)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached dto.TimetableResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			s.cache.Del(ctx, key)
		}
	}

	rows, err := s.assignments.ListViewByTenant(ctx, query.TenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	resp := &dto.TimetableResponse{TenantID: query.TenantID, Rows: rows}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, raw, s.ttl)
		}
	}
	return resp, nil
}

// Invalidate drops the cached timetable for a tenant.
func (s *TimetableService) Invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, cacheKey(tenantID))
}

func cacheKey(tenantID string) string {
	return "timetable:" + tenantID
}

// RedisTimetableCache adapts a Redis client to the timetable cache. Cache
// failures degrade to database reads and are only logged.
type RedisTimetableCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTimetableCache builds the adapter.
func NewRedisTimetableCache(client *redis.Client, logger *zap.Logger) *RedisTimetableCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTimetableCache{client: client, logger: logger}
}

func (c *RedisTimetableCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Sugar().Warnw("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *RedisTimetableCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Sugar().Warnw("cache set failed", "key", key, "error", err)
	}
}

func (c *RedisTimetableCache) Del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Sugar().Warnw("cache del failed", "key", key, "error", err)
	}
}
