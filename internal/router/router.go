// Package router assembles the HTTP surface: public content reads, auth
// flows, editor mutations behind the lock gate and the admin console.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/handler"
	"github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	"github.com/campusboard/portal-api/pkg/config"
	"github.com/campusboard/portal-api/pkg/logger"
	corsmiddleware "github.com/campusboard/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusboard/portal-api/pkg/middleware/requestid"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Notices   *handler.NoticeHandler
	Homework  *handler.HomeworkHandler
	Routines  *handler.RoutineHandler
	ClassTime *handler.ClassTimeHandler
	Locks     *handler.LockHandler
	Admin     *handler.AdminHandler
	Assistant *handler.AssistantHandler
	Exports   *handler.ExportHandler
	Metrics   *handler.MetricsHandler
}

// New builds the gin engine with all portal routes mounted. adminAudit, when
// non-nil, wraps the admin console group so every successful admin request
// leaves an audit row.
func New(cfg *config.Config, logr *zap.Logger, authService *service.AuthService, metricsService *service.MetricsService, adminAudit gin.HandlerFunc, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/visitor", h.Auth.VisitorLogin)
		auth.POST("/admin/login", h.Auth.AdminLogin)
		auth.POST("/student/login", h.Auth.StudentLogin)
		auth.POST("/apply", h.Auth.Apply)
		auth.POST("/logout", middleware.OptionalJWT(authService), h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)
	}

	// Content reads are open; lock snapshots too, so anonymous readers can
	// render lock badges.
	public := api.Group("", middleware.OptionalJWT(authService))
	{
		public.GET("/notices", h.Notices.List)
		public.GET("/notices/:id", h.Notices.Get)
		public.GET("/homework", h.Homework.List)
		public.GET("/homework/:id", h.Homework.Get)
		public.GET("/routines", h.Routines.List)
		public.GET("/routines/:id", h.Routines.Get)
		public.GET("/class-times", h.ClassTime.List)
		public.GET("/class-times/:id", h.ClassTime.Get)
		public.GET("/locks/:section", h.Locks.Snapshot)
		public.POST("/locks/:section/retry", h.Locks.Retry)
	}

	if cfg.Assistant.Enabled {
		api.POST("/assistant/ask", h.Assistant.Ask)
	}

	if cfg.Exports.Enabled {
		exports := api.Group("/exports", middleware.JWT(authService))
		exports.GET("/class-times", h.Exports.ClassTimes)
		exports.GET("/routines", h.Exports.Routines)
	}

	// Mutations require an editor-capable token. The lock gate inside each
	// service still has the final say.
	editor := api.Group("", middleware.JWT(authService), middleware.RequireEditor())
	{
		editor.POST("/notices", h.Notices.Create)
		editor.PUT("/notices/:id", h.Notices.Update)
		editor.DELETE("/notices/:id", h.Notices.Delete)
		editor.POST("/homework", h.Homework.Create)
		editor.PUT("/homework/:id", h.Homework.Update)
		editor.DELETE("/homework/:id", h.Homework.Delete)
		editor.POST("/routines", h.Routines.Create)
		editor.PUT("/routines/:id", h.Routines.Update)
		editor.DELETE("/routines/:id", h.Routines.Delete)
		editor.POST("/class-times", h.ClassTime.Create)
		editor.PUT("/class-times/:id", h.ClassTime.Update)
		editor.DELETE("/class-times/:id", h.ClassTime.Delete)
	}

	admin := api.Group("/admin", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	if adminAudit != nil {
		admin.Use(adminAudit)
	}
	{
		admin.GET("/locks", h.Locks.Overview)
		admin.PUT("/locks/master", h.Locks.SetMaster)
		admin.PUT("/locks/:section", h.Locks.SetSection)
		admin.PUT("/locks/:section/:id", h.Locks.SetItem)
		admin.GET("/applications", h.Admin.ListApplications)
		admin.POST("/applications/:id/review", h.Admin.ReviewApplication)
		admin.GET("/students", h.Admin.ListStudents)
		admin.POST("/students/:id/promote", h.Admin.Promote)
		admin.POST("/students/:id/demote", h.Admin.Demote)
	}

	return r
}
