package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/handlers"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/ratelimit"
)

// RouterDeps bundles everything route registration needs.
type RouterDeps struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Tasks     *handlers.TaskHandler
	Teams     *handlers.TeamHandler
	Analytics *handlers.AnalyticsHandler
	Admin     *handlers.AdminHandler

	Users     ports.UserRepository
	JWTSecret string

	Limiter    ratelimit.Store
	RateLimit  int
	RateWindow time.Duration
}

func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	authn := middleware.AuthMiddleware(deps.Users, deps.JWTSecret)
	limited := middleware.RateLimitMiddleware(deps.Limiter, deps.RateLimit, deps.RateWindow)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", deps.Health.CheckHealth)
		api.GET("/health/report", deps.Health.CheckHealthReport)

		auth := api.Group("/auth")
		{
			auth.POST("/register", limited, deps.Auth.Register)
			auth.POST("/login", limited, deps.Auth.Login)
			auth.POST("/forgot-password", limited, deps.Auth.ForgotPassword)
			auth.POST("/reset-password", limited, deps.Auth.ResetPassword)
			auth.GET("/me", authn, deps.Auth.Me)
		}

		tasks := api.Group("/tasks", authn)
		{
			tasks.GET("", deps.Tasks.ListTasks)
			tasks.POST("", deps.Tasks.CreateTask)
			tasks.GET("/:id", deps.Tasks.GetTask)
			tasks.PUT("/:id", deps.Tasks.UpdateTask)
			tasks.PATCH("/:id/status", deps.Tasks.UpdateTaskStatus)
			tasks.DELETE("/:id", deps.Tasks.DeleteTask)
		}

		teams := api.Group("/teams", authn)
		{
			teams.GET("", deps.Teams.ListTeams)
			teams.POST("", deps.Teams.CreateTeam)
			teams.GET("/:id", deps.Teams.GetTeam)
			teams.PUT("/:id", deps.Teams.UpdateTeam)
			teams.DELETE("/:id", deps.Teams.DeleteTeam)
			teams.POST("/:id/members", deps.Teams.AddMember)
			teams.DELETE("/:id/members/:userId", deps.Teams.RemoveMember)
		}

		analytics := api.Group("/analytics", authn)
		{
			analytics.GET("/overview", deps.Analytics.Overview)
			analytics.GET("/completion-trends", deps.Analytics.CompletionTrends)
			analytics.GET("/productivity", deps.Analytics.Productivity)
			analytics.GET("/time-analysis", deps.Analytics.TimeAnalysis)
			analytics.GET("/best-days", deps.Analytics.BestDays)
		}

		admin := api.Group("/admin", authn, middleware.RequireRoles(domain.RoleAdmin), limited)
		{
			admin.GET("/users", deps.Admin.ListUsers)
			admin.GET("/users/:id", deps.Admin.GetUser)
			admin.PUT("/users/:id", deps.Admin.UpdateUser)
			admin.DELETE("/users/:id", deps.Admin.DeleteUser)
			admin.GET("/tasks", deps.Admin.ListTasks)
			admin.GET("/activity-logs", deps.Admin.ListActivity)
			admin.GET("/activity-logs/stream", deps.Admin.ActivityStream)
			admin.GET("/dashboard", deps.Admin.DashboardStats)
		}
	}
}
