package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/config"
	"github.com/karashiro/jobtrack-api/internal/database"
	"github.com/karashiro/jobtrack-api/internal/engine"
	"github.com/karashiro/jobtrack-api/internal/handlers"
	"github.com/karashiro/jobtrack-api/internal/logger"
	"github.com/karashiro/jobtrack-api/internal/mailer"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/karashiro/jobtrack-api/internal/token"
)

func main() {
	log := logger.New(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))

	// Session store backed by Redis
	redisAddr := cfg.Redis.Host + ":" + cfg.Redis.Port
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.Auth.SessionSecret),
	)
	if err != nil {
		log.Fatal("failed to create Redis store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("jobtrack_session", store))

	jwt := token.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	appService := services.NewApplicationService(appRepo)
	activityService := services.NewActivityService(activityRepo, appRepo)
	reminderService := services.NewReminderService(reminderRepo, appRepo, activityRepo)
	settingsService := services.NewSettingsService(userRepo)

	var assistService *services.AssistService
	if cfg.OpenAIAPIKey != "" {
		assistService = services.NewAssistService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, jwt)
	appHandler := handlers.NewApplicationHandler(appService, assistService)
	activityHandler := handlers.NewActivityHandler(activityService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Job tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(jwt), authHandler.GetCurrentUser)
		}

		apps := api.Group("/applications")
		apps.Use(middleware.RequireAuth(jwt))
		{
			apps.GET("", appHandler.ListApplications)
			apps.POST("", appHandler.CreateApplication)
			apps.POST("/parse", appHandler.ParseJobPosting)
			apps.GET("/:id", appHandler.GetApplication)
			apps.PATCH("/:id", appHandler.PatchApplication)
			apps.DELETE("/:id", appHandler.DeleteApplication)
			apps.GET("/:id/activities", activityHandler.ListActivities)
			apps.POST("/:id/activities", activityHandler.CreateActivity)
		}

		activities := api.Group("/activities")
		activities.Use(middleware.RequireAuth(jwt))
		{
			activities.GET("/:id", activityHandler.GetActivity)
			activities.PATCH("/:id", activityHandler.PatchActivity)
			activities.DELETE("/:id", activityHandler.DeleteActivity)
		}

		reminders := api.Group("/reminders")
		reminders.Use(middleware.RequireAuth(jwt))
		{
			reminders.GET("", reminderHandler.ListReminders)
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.GET("/:id", reminderHandler.GetReminder)
			reminders.PATCH("/:id", reminderHandler.PatchReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
		}

		settings := api.Group("/settings")
		settings.Use(middleware.RequireAuth(jwt))
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.PutSettings)
		}
	}

	// Reminder engine
	var outbound mailer.Mailer
	if cfg.Mail.Host != "" {
		outbound = mailer.NewSMTPMailer(cfg.Mail, log)
	} else {
		outbound = mailer.NewLogMailer(log)
	}
	dispatcher := engine.NewDispatcher(outbound, log)
	reminderEngine := engine.NewEngine(reminderRepo, dispatcher, cfg.Reminder.BatchSize, log)
	scheduler := engine.NewScheduler(reminderEngine, cfg.Reminder.ScanInterval, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
}
