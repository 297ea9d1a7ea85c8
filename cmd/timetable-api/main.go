package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/uni-timetable-api/api/swagger"
	"github.com/noah-isme/uni-timetable-api/internal/handler"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/cache"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
)

// @title Uni Timetable API
// @version 0.1.0
// @description Greedy timetable assignment engine with asynchronous optimize jobs
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var timetableCache *service.RedisTimetableCache
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		timetableCache = service.NewRedisTimetableCache(redisClient, logr)
	}

	tenants := repository.NewTenantRepository(db)
	courses := repository.NewCourseRepository(db)
	rooms := repository.NewRoomRepository(db)
	timeslots := repository.NewTimeslotRepository(db)
	assignments := repository.NewAssignmentRepository(db)

	metricsSvc := service.NewMetricsService()
	catalogSvc := service.NewCatalogService(courses, rooms, timeslots, logr)

	var timetableSvc *service.TimetableService
	if timetableCache != nil {
		timetableSvc = service.NewTimetableService(assignments, timetableCache, cfg.Timetable.CacheTTL, logr)
	} else {
		timetableSvc = service.NewTimetableService(assignments, nil, cfg.Timetable.CacheTTL, logr)
	}

	affinity := scheduler.ParseAffinity(cfg.Scheduler.Affinity)
	backends := scheduler.NewRegistry(
		scheduler.GreedyBackend{Affinity: affinity},
		scheduler.MILPBackend{},
		scheduler.CPSATBackend{},
	)

	var optimizeSvc *service.OptimizeService
	queue := jobs.NewQueue("optimize", func(ctx context.Context, job jobs.Job) error {
		return optimizeSvc.HandleJob(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Scheduler.Workers,
		BufferSize: cfg.Scheduler.QueueSize,
		Logger:     logr,
	})

	optimizeSvc = service.NewOptimizeService(
		tenants,
		catalogSvc,
		assignments,
		queue,
		backends,
		timetableSvc,
		metricsSvc,
		validator.New(),
		logr,
		service.OptimizeServiceConfig{
			DefaultSolver:    cfg.Scheduler.DefaultSolver,
			DefaultGroupSize: cfg.Scheduler.DefaultGroupSize,
			PolicyVersion:    cfg.Scheduler.PolicyVersion,
			Affinity:         affinity,
		},
	)

	queue.Start(context.Background())
	defer queue.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	optimizeHandler := handler.NewOptimizeHandler(optimizeSvc)
	statusHandler := handler.NewSchedulerStatusHandler(optimizeSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/optimize", optimizeHandler.Submit)
		api.GET("/optimize/:id", optimizeHandler.Status)
		api.GET("/scheduler/status", statusHandler.Status)
		api.GET("/timetable", timetableHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
