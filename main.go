// main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewfit/config"
	"crewfit/database"
	"crewfit/handlers"
	"crewfit/handlers/admin"
	"crewfit/metrics"
	"crewfit/middleware"
	"crewfit/push"
	"crewfit/repository"
	"crewfit/services"
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	utils.InitLogger(cfg.LogLevel, !cfg.IsProduction())

	// Validate critical environment variables
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize database
	if err := database.InitDB(cfg.Database.DSN(), !cfg.IsProduction()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.CloseDB()

	bodyStore, err := database.OpenBodyStore(cfg.BodyStorePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BodyStorePath).Msg("failed to open body store")
	}
	defer bodyStore.Close()

	db := database.GetDB()
	battleRepo := repository.NewBattleRepository(db)
	crewRepo := repository.NewCrewRepository(db)
	historyRepo := repository.NewExerciseHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	bodyRepo := repository.NewBodyHistoryRepository(bodyStore)

	sender := newPushSender(cfg)
	log.Info().Str("sender", sender.GetType()).Msg("push sender ready")

	battleService := services.NewBattleService(battleRepo, crewRepo, historyRepo)
	notificationService := services.NewNotificationService(
		repository.NewNotificationRepository(db), userRepo, bodyRepo, battleRepo, sender)

	handlers.InitHandlers(handlers.Services{
		Battles:          battleService,
		Crews:            services.NewCrewService(crewRepo, battleService, historyRepo),
		Notifications:    notificationService,
		Attendance:       services.NewAttendanceService(repository.NewAttendanceRepository(db)),
		Bodies:           services.NewBodyService(bodyRepo),
		LiveFeedInterval: cfg.LiveFeedInterval,
	})

	// Initialize battle scheduler
	scheduler := services.NewBattleScheduler(cfg.BattleCron, battleService, crewRepo, userRepo, notificationService)
	admin.InitBattleAdmin(scheduler)
	if cfg.BattleSchedulerEnabled {
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start battle scheduler")
		}
		defer scheduler.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(cfg.IsProduction()),
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(metrics.Middleware())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(10*time.Minute, stopCleanup)
	defer close(stopCleanup)
	app.Use(middleware.RateLimit(limiter))

	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", metrics.Handler())

	setupRoutes(app, cfg.JWTSecret)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("🚀 Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupRoutes(app *fiber.App, jwtSecret string) {
	auth := middleware.AuthMiddleware(jwtSecret)

	api := app.Group("/api/v1", auth)

	// Battle routes
	api.Get("/crew/:crew_id/battle", handlers.GetBattleStatus)
	api.Get("/crew/:crew_id/battle/stats", handlers.GetBattleStats)
	api.Get("/battles/:battle_id/ranking", handlers.GetBattleMemberRanking)

	// Crew routes
	api.Get("/crew/ranking/:exercise_id", handlers.GetCrewRankingByExercise)
	api.Get("/crew/:crew_id/detail", handlers.GetCrewDetail)
	api.Get("/crew/:crew_id/ranking", handlers.GetCrewMemberRanking)

	// Notification routes
	api.Get("/notifications", handlers.ListNotifications)
	api.Patch("/notifications/:notification_id/status", handlers.UpdateNotificationStatus)
	api.Post("/notifications/survey", handlers.CreateSurveyNotification)
	api.Post("/notifications/battle", handlers.CreateBattleNotification)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Put("/device-token", handlers.RegisterDeviceToken)
	userGroup.Post("/attendance", handlers.MarkAttendance)
	userGroup.Get("/attendance", handlers.GetMonthlyAttendance)
	userGroup.Post("/body", handlers.RecordBodySurvey)
	userGroup.Get("/body", handlers.ListBodySurveys)

	// Admin routes
	adminGroup := app.Group("/api/v1/admin", middleware.AdminAuthMiddleware(jwtSecret))
	adminGroup.Post("/battles/run", admin.RunBattles)
	adminGroup.Get("/battles/last-run", admin.GetLastBattleRun)

	// Live battle feed
	app.Get("/ws/battles/:crew_id", handlers.RequireWebSocket, auth, handlers.BattleLiveFeed)
}

func newPushSender(cfg *config.Config) push.Sender {
	if cfg.FCMCredentialsFile == "" {
		log.Warn().Msg("FCM_CREDENTIALS_FILE not set, push notifications will only be logged")
		return push.LogSender{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sender, err := push.NewFCMSender(ctx, cfg.FCMCredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize FCM")
	}
	return sender
}
