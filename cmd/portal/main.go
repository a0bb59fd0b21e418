package main

import (
	"fmt"
	"log"

	"github.com/spf13/afero"

	_ "github.com/campusboard/portal-api/api/swagger"
	"github.com/campusboard/portal-api/internal/assistant"
	"github.com/campusboard/portal-api/internal/handler"
	"github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/repository"
	"github.com/campusboard/portal-api/internal/router"
	"github.com/campusboard/portal-api/internal/service"
	"github.com/campusboard/portal-api/internal/session"
	"github.com/campusboard/portal-api/pkg/cache"
	"github.com/campusboard/portal-api/pkg/config"
	"github.com/campusboard/portal-api/pkg/database"
	"github.com/campusboard/portal-api/pkg/logger"
)

// @title Campus Board Portal API
// @version 1.0.0
// @description School portal backend: notices, homework, routines, class times and the lock console
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	// Redis is optional. Without it every lock snapshot read hits postgres.
	var cacheService *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		cacheService = service.NewCacheService(nil, metricsService, cfg.Locks.CacheTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Locks.CacheTTL, logr, true)
	}

	sessionStore := session.NewStore(afero.NewOsFs(), cfg.Session.StoragePath, logr)
	sessions := session.NewManager(sessionStore)

	userRepo := repository.NewUserRepository(db)
	lockRepo := repository.NewLockRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	classTimeRepo := repository.NewClassTimeRepository(db)

	lockService := service.NewLockService(lockRepo, cacheService, metricsService, userRepo, logr, cfg.Locks.CacheTTL)
	watcher := service.NewLockWatcher(lockService, cfg.Locks.PollInterval, metricsService, logr)
	defer watcher.Stop()

	// The server itself is a standing subscriber for every section, so poll
	// loops run for the process lifetime and snapshot reads stay warm.
	for _, section := range models.Sections() {
		unsubscribe := watcher.Subscribe(section)
		defer unsubscribe()
	}

	authService := service.NewAuthService(userRepo, sessions, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	adminService := service.NewAdminService(userRepo, logr)
	noticeService := service.NewNoticeService(noticeRepo, lockService, cacheService, nil, logr)
	homeworkService := service.NewHomeworkService(homeworkRepo, lockService, cacheService, nil, logr)
	routineService := service.NewRoutineService(routineRepo, lockService, cacheService, nil, logr)
	classTimeService := service.NewClassTimeService(classTimeRepo, lockService, cacheService, nil, logr)
	exportService := service.NewExportService(classTimeService, routineService, logr)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessions),
		Notices:   handler.NewNoticeHandler(noticeService),
		Homework:  handler.NewHomeworkHandler(homeworkService),
		Routines:  handler.NewRoutineHandler(routineService),
		ClassTime: handler.NewClassTimeHandler(classTimeService),
		Locks:     handler.NewLockHandler(lockService, watcher),
		Admin:     handler.NewAdminHandler(adminService),
		Assistant: handler.NewAssistantHandler(assistant.New(nil, logr)),
		Exports:   handler.NewExportHandler(exportService),
		Metrics:   handler.NewMetricsHandler(metricsService),
	}

	adminAudit := middleware.Audit(userRepo, logr, models.AuditActionAdminRequest, "admin")
	r := router.New(cfg, logr, authService, metricsService, adminAudit, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
