package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/drashti-2005/task-manager-sub000/internal/adapter/db"
	httpadapter "github.com/drashti-2005/task-manager-sub000/internal/adapter/http"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/handlers"
	httpmiddleware "github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/ws"
	"github.com/drashti-2005/task-manager-sub000/internal/app/audit"
	"github.com/drashti-2005/task-manager-sub000/internal/app/service"
	"github.com/drashti-2005/task-manager-sub000/internal/config"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
	"github.com/drashti-2005/task-manager-sub000/pkg/mailer"
	"github.com/drashti-2005/task-manager-sub000/pkg/ratelimit"
	"github.com/drashti-2005/task-manager-sub000/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	apierrors.SetProductionMode(cfg.Production())

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := dbadapter.Migrate(db); err != nil {
		logger.Fatal("failed to run schema migration", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepository(db)
	taskRepo := dbadapter.NewTaskRepository(db)
	teamRepo := dbadapter.NewTeamRepository(db)
	activityRepo := dbadapter.NewActivityLogRepository(db)

	hub := ws.NewHub()
	recorder := audit.NewRecorder(activityRepo, hub)

	var resetMailer ports.Mailer
	if cfg.SmtpConfigured() {
		resetMailer = mailer.NewSMTPMailer(cfg.SmtpHost, cfg.SmtpPort, cfg.SmtpUser, cfg.SmtpPassword, cfg.SmtpFrom)
	} else {
		logger.Warn("no SMTP transport configured, password-reset links are returned in the API response")
	}

	authService := service.NewAuthService(userRepo, recorder, resetMailer, cfg.JwtSecret, cfg.JwtExpiry, cfg.ClientURL)
	taskService := service.NewTaskService(taskRepo, teamRepo, userRepo, recorder)
	teamService := service.NewTeamService(teamRepo, taskRepo, userRepo, recorder)
	analyticsService := service.NewAnalyticsService(taskRepo, teamRepo)
	adminService := service.NewAdminService(userRepo, taskRepo, teamRepo, activityRepo, recorder, service.UserDeletePolicy(cfg.UserDeletePolicy))

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.RouterDeps{
		Health:     handlers.NewHealthHandler(db),
		Auth:       handlers.NewAuthHandler(authService, userRepo),
		Tasks:      handlers.NewTaskHandler(taskService),
		Teams:      handlers.NewTeamHandler(teamService),
		Analytics:  handlers.NewAnalyticsHandler(analyticsService),
		Admin:      handlers.NewAdminHandler(adminService, hub),
		Users:      userRepo,
		JWTSecret:  cfg.JwtSecret,
		Limiter:    ratelimit.NewMemoryStore(),
		RateLimit:  cfg.RateLimitRequests,
		RateWindow: cfg.RateLimitWindow,
	})

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
