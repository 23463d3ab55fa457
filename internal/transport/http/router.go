package httptransport

import (
	"log/slog"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/token"
	"github.com/adilbekov/timetrack/internal/transport/http/handler"
	"github.com/adilbekov/timetrack/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// NewRouter declares every route together with its authentication mode and
// required-role set, so the full access-control table is readable in one
// place. Authentication always resolves before the role guard; the guard
// only consumes the principal it produced.
func NewRouter(logger *slog.Logger, tokens *token.Service, authHandler *handler.AuthHandler, jobHandler *handler.JobHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	optionalAuth := middleware.AuthenticateOptional(tokens, logger)
	requireAuth := middleware.Authenticate(tokens, logger)
	adminOnly := middleware.RequireRoles(logger, domain.RoleAdmin)

	// Public auth routes. A missing token is fine here, but a token that is
	// present must still verify.
	auth := r.Group("/auth")
	auth.POST("/register", optionalAuth, authHandler.Register)
	auth.POST("/verify", optionalAuth, authHandler.Verify)
	auth.POST("/token", optionalAuth, authHandler.Login)
	auth.GET("/test-user", requireAuth, authHandler.CurrentUser)
	auth.GET("/test-admin", requireAuth, adminOnly, authHandler.CurrentUser)

	// Protected job/project routes.
	jobs := r.Group("/job", requireAuth)
	jobs.POST("/start", jobHandler.Start)
	jobs.PATCH("/finish", jobHandler.Finish)
	jobs.GET("", jobHandler.List)
	jobs.GET("/projects", jobHandler.ListProjects)
	jobs.GET("/working-time", jobHandler.WorkingTime)

	// Admin-only routes override the group's empty role set.
	jobs.POST("/project", adminOnly, jobHandler.CreateProject)
	jobs.GET("/admin", adminOnly, jobHandler.ListAll)
	jobs.GET("/admin/working-time", adminOnly, jobHandler.WorkingTimeAllUsers)

	return r
}
