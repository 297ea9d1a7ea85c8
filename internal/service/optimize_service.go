package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

type catalogSource interface {
	Snapshot(ctx context.Context, tenantID string) (*CatalogSnapshot, error)
}

type planSink interface {
	ReplaceAuto(ctx context.Context, tenantID string, rows []models.Assignment) error
}

type tenantResolver interface {
	FindByID(ctx context.Context, id string) (*models.Tenant, error)
	FirstEnabled(ctx context.Context) (*models.Tenant, error)
	EnsureDemo(ctx context.Context) (*models.Tenant, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type timetableInvalidator interface {
	Invalidate(ctx context.Context, tenantID string)
}

type jobMetrics interface {
	ObserveJob(status string, solver string, duration time.Duration, score *float64)
}

// OptimizeService is the job orchestrator: it accepts assignment runs,
// executes them on a bounded worker pool, and exposes their status to
// polling callers. Jobs run to completion or failure; there is no
// cancellation and no retry beyond the single eligibility relaxation.
type OptimizeService struct {
	tenants   tenantResolver
	catalog   catalogSource
	sink      planSink
	queue     jobDispatcher
	backends  *scheduler.Registry
	timetable timetableInvalidator
	metrics   jobMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       OptimizeServiceConfig

	jobs  jobRegistry
	locks tenantLocks
}

// OptimizeServiceConfig carries scheduling policy defaults.
type OptimizeServiceConfig struct {
	DefaultSolver    string
	DefaultGroupSize int
	PolicyVersion    int
	Affinity         scheduler.BuildingAffinity
}

// NewOptimizeService wires orchestrator dependencies.
func NewOptimizeService(
	tenants tenantResolver,
	catalog catalogSource,
	sink planSink,
	queue jobDispatcher,
	backends *scheduler.Registry,
	timetable timetableInvalidator,
	metrics jobMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg OptimizeServiceConfig,
) *OptimizeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultSolver == "" {
		cfg.DefaultSolver = "greedy"
	}
	if cfg.DefaultGroupSize < 1 {
		cfg.DefaultGroupSize = 1
	}
	if cfg.PolicyVersion < 1 {
		cfg.PolicyVersion = 1
	}
	if backends == nil {
		backends = scheduler.NewRegistry(scheduler.GreedyBackend{Affinity: cfg.Affinity})
	}
	return &OptimizeService{
		tenants:   tenants,
		catalog:   catalog,
		sink:      sink,
		queue:     queue,
		backends:  backends,
		timetable: timetable,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		jobs:      jobRegistry{items: make(map[string]models.OptimizeJob)},
		locks:     tenantLocks{locks: make(map[string]*sync.Mutex)},
	}
}

type runParams struct {
	PolicyVersion int
	Week          string
	Solver        string
	GroupSize     int
	UseForbidden  bool
	TenantID      string
}

// Submit registers a queued job and hands it to the worker pool. The
// caller gets the job ID immediately and polls GetStatus for the outcome.
func (s *OptimizeService) Submit(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeStatusResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid optimize payload")
	}

	params := runParams{
		PolicyVersion: req.PolicyVersion,
		Week:          req.Week,
		Solver:        req.Solver,
		GroupSize:     req.GroupSize,
		UseForbidden:  true,
		TenantID:      req.TenantID,
	}
	if params.PolicyVersion < 1 {
		params.PolicyVersion = s.cfg.PolicyVersion
	}
	if params.Solver == "" {
		params.Solver = s.cfg.DefaultSolver
	}
	if params.GroupSize < 1 {
		params.GroupSize = s.cfg.DefaultGroupSize
	}
	if req.UseForbidden != nil {
		params.UseForbidden = *req.UseForbidden
	}
	if _, ok := s.backends.Lookup(params.Solver); !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownSolver, fmt.Sprintf("unknown solver backend %q", params.Solver))
	}

	job := models.OptimizeJob{
		ID:          uuid.NewString(),
		Status:      models.JobStatusQueued,
		Solver:      params.Solver,
		SubmittedAt: time.Now().UTC(),
	}
	s.jobs.put(job)

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "optimize", Payload: params}); err != nil {
		s.fail(job.ID, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "scheduler queue unavailable"), time.Now().UTC())
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to enqueue optimize job")
	}

	return &dto.OptimizeStatusResponse{JobID: job.ID, Status: string(job.Status), Solver: job.Solver}, nil
}

// GetStatus reports a job's state. Unknown IDs yield a not_found status,
// never an error.
func (s *OptimizeService) GetStatus(jobID string) *dto.OptimizeStatusResponse {
	job, ok := s.jobs.get(jobID)
	if !ok {
		return &dto.OptimizeStatusResponse{JobID: jobID, Status: string(models.JobStatusNotFound)}
	}
	return &dto.OptimizeStatusResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Solver:  job.Solver,
		Score:   job.Score,
		Explain: job.Explain,
	}
}

// BackendAvailability exposes the solver capability map.
func (s *OptimizeService) BackendAvailability() dto.SchedulerStatusResponse {
	return s.backends.Availability()
}

// HandleJob is the worker-pool entry point for one assignment run. Every
// failure is caught here and recorded on the job; nothing escapes to other
// jobs or the pool.
func (s *OptimizeService) HandleJob(ctx context.Context, job jobs.Job) (err error) {
	started := time.Now().UTC()
	defer func() {
		if r := recover(); r != nil {
			err = appErrors.Wrap(fmt.Errorf("panic: %v", r), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assignment run panicked")
			s.fail(job.ID, err, started)
		}
	}()

	params, ok := job.Payload.(runParams)
	if !ok {
		err = appErrors.Clone(appErrors.ErrInternal, "malformed optimize job payload")
		s.fail(job.ID, err, started)
		return err
	}

	s.jobs.update(job.ID, func(j *models.OptimizeJob) {
		j.Status = models.JobStatusRunning
	})

	if err = s.run(ctx, job.ID, params, started); err != nil {
		s.fail(job.ID, err, started)
		return err
	}
	return nil
}

func (s *OptimizeService) run(ctx context.Context, jobID string, params runParams, started time.Time) error {
	tenant, err := s.resolveTenant(ctx, params.TenantID)
	if err != nil {
		return err
	}
	s.jobs.update(jobID, func(j *models.OptimizeJob) { j.TenantID = tenant.ID })

	// One in-flight run per tenant: concurrent runs would race on the
	// delete-then-insert in the plan sink.
	unlock := s.locks.lock(tenant.ID)
	defer unlock()

	snapshot, err := s.catalog.Snapshot(ctx, tenant.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog snapshot")
	}

	input := scheduler.Input{
		TenantID:     tenant.ID,
		Courses:      snapshot.Courses,
		Rooms:        snapshot.Rooms,
		Slots:        snapshot.Slots,
		GroupSize:    params.GroupSize,
		UseForbidden: params.UseForbidden,
	}

	plan, solverUsed, err := s.solve(ctx, params.Solver, input)
	if err != nil {
		return err
	}

	if plan.Stats.AssignedCourses == 0 && input.UseForbidden {
		relaxed := input
		relaxed.UseForbidden = false
		plan, _, err = s.solve(ctx, "greedy", relaxed)
		if err != nil {
			return err
		}
		solverUsed += "+relaxed"
	}

	score := roundScore(plan.Stats)
	elapsed := time.Since(started).Round(time.Millisecond)
	explain := fmt.Sprintf("solver=%s assigned %d/%d courses in %d blocks (%s elapsed, policy v%d, week %s)",
		solverUsed, plan.Stats.AssignedCourses, plan.Stats.TotalCourses, plan.Stats.AssignmentCount,
		elapsed, params.PolicyVersion, params.Week)
	if plan.Stats.Note != "" {
		explain += fmt.Sprintf(" [%s]", plan.Stats.Note)
	}

	if err := s.sink.ReplaceAuto(ctx, tenant.ID, planRows(tenant.ID, plan)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist assignment plan")
	}
	if s.timetable != nil {
		s.timetable.Invalidate(ctx, tenant.ID)
	}

	finished := time.Now().UTC()
	s.jobs.update(jobID, func(j *models.OptimizeJob) {
		j.Status = models.JobStatusCompleted
		j.Solver = solverUsed
		j.Score = &score
		j.Explain = &explain
		j.FinishedAt = &finished
	})
	if s.metrics != nil {
		s.metrics.ObserveJob(string(models.JobStatusCompleted), solverUsed, finished.Sub(started), &score)
	}
	s.logger.Sugar().Infow("optimize job completed",
		"job_id", jobID, "tenant_id", tenant.ID, "solver", solverUsed,
		"assigned", plan.Stats.AssignedCourses, "total", plan.Stats.TotalCourses, "score", score)
	return nil
}

// solve runs the requested backend, silently falling back to greedy when
// the backend is unavailable or declines with a nil plan.
func (s *OptimizeService) solve(ctx context.Context, solver string, input scheduler.Input) (*scheduler.Plan, string, error) {
	backend, ok := s.backends.Lookup(solver)
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrUnknownSolver, fmt.Sprintf("unknown solver backend %q", solver))
	}

	if backend.Available() {
		plan, err := backend.Solve(ctx, input)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "solver backend failed")
		}
		if plan != nil {
			return plan, backend.Name(), nil
		}
	}
	if backend.Name() == "greedy" {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, "greedy backend returned no plan")
	}

	fallback, ok := s.backends.Lookup("greedy")
	if !ok || !fallback.Available() {
		return nil, "", appErrors.Clone(appErrors.ErrUnavailable, "no solver backend available")
	}
	plan, err := fallback.Solve(ctx, input)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "greedy fallback failed")
	}
	if plan == nil {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, "greedy backend returned no plan")
	}
	return plan, fallback.Name(), nil
}

func (s *OptimizeService) resolveTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	if tenantID != "" {
		tenant, err := s.tenants.FindByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrTenantNotFound, fmt.Sprintf("tenant %s not found", tenantID))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tenant")
		}
		return tenant, nil
	}

	tenant, err := s.tenants.FirstEnabled(ctx)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve tenant")
	}

	tenant, err = s.tenants.EnsureDemo(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bootstrap demo tenant")
	}
	s.logger.Sugar().Infow("bootstrapped demo tenant", "tenant_id", tenant.ID)
	return tenant, nil
}

func (s *OptimizeService) fail(jobID string, cause error, started time.Time) {
	appErr := appErrors.FromError(cause)
	explain := fmt.Sprintf("%s: %s", appErr.Code, appErr.Message)
	finished := time.Now().UTC()
	s.jobs.update(jobID, func(j *models.OptimizeJob) {
		j.Status = models.JobStatusFailed
		j.Explain = &explain
		j.FinishedAt = &finished
	})
	if s.metrics != nil {
		s.metrics.ObserveJob(string(models.JobStatusFailed), "", finished.Sub(started), nil)
	}
	s.logger.Sugar().Errorw("optimize job failed", "job_id", jobID, "code", appErr.Code, "error", cause)
}

// planRows expands a plan into one persisted row per block slot, tagging
// each with its ordinal position inside the block.
func planRows(tenantID string, plan *scheduler.Plan) []models.Assignment {
	rows := make([]models.Assignment, 0, len(plan.Assignments))
	for _, assignment := range plan.Assignments {
		total := len(assignment.SlotIDs)
		for i, slotID := range assignment.SlotIDs {
			rows = append(rows, models.Assignment{
				TenantID:   tenantID,
				CourseID:   assignment.CourseID,
				RoomID:     assignment.RoomID,
				TimeslotID: slotID,
				Status:     models.AssignmentStatusAuto,
				Reason:     fmt.Sprintf("auto block %d/%d", i+1, total),
			})
		}
	}
	return rows
}

func roundScore(stats scheduler.Stats) float64 {
	total := stats.TotalCourses
	if total < 1 {
		total = 1
	}
	return math.Round(float64(stats.AssignedCourses)/float64(total)*10000) / 10000
}

// --- Job registry ---

type jobRegistry struct {
	mu    sync.RWMutex
	items map[string]models.OptimizeJob
}

func (r *jobRegistry) put(job models.OptimizeJob) {
	r.mu.Lock()
	r.items[job.ID] = job
	r.mu.Unlock()
}

func (r *jobRegistry) get(id string) (models.OptimizeJob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.items[id]
	return job, ok
}

func (r *jobRegistry) update(id string, mutate func(*models.OptimizeJob)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.items[id]
	if !ok {
		return
	}
	mutate(&job)
	r.items[id] = job
}

// --- Per-tenant run locks ---

type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *tenantLocks) lock(tenantID string) func() {
	t.mu.Lock()
	lock, ok := t.locks[tenantID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[tenantID] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
