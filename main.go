package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/config"
	"github.com/bellsbalance/backend/internal/handler"
	"github.com/bellsbalance/backend/internal/middleware"
	"github.com/bellsbalance/backend/internal/pdf"
	"github.com/bellsbalance/backend/internal/repository"
	"github.com/bellsbalance/backend/internal/security"
	"github.com/bellsbalance/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	ctx := context.Background()

	store, cleanup, err := newStateStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize state store", zap.Error(err))
	}
	defer cleanup()

	tracker, err := service.NewTrackerService(ctx, store, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracker service", zap.Error(err))
	}

	pdfGenerator := pdf.NewGenerator(logger)
	reportService := service.NewReportService(tracker, pdfGenerator, logger)

	recordHandler := handler.NewRecordHandler(tracker, logger)
	reminderHandler := handler.NewReminderHandler(tracker, logger)
	inventoryHandler := handler.NewInventoryHandler(tracker, logger)
	profileHandler := handler.NewProfileHandler(tracker, logger)
	statsHandler := handler.NewStatsHandler(tracker, logger)
	gamificationHandler := handler.NewGamificationHandler(tracker, logger)
	exportHandler := handler.NewExportHandler(tracker, reportService, logger)
	healthHandler := handler.NewHealthHandler()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Recovery middleware must be first
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	r.GET("/health", healthHandler.GetHealth)

	v1 := r.Group("/api/v1")
	{
		records := v1.Group("/records")
		{
			records.POST("", recordHandler.PostRecord)
			records.GET("", recordHandler.GetRecords)
			records.DELETE("/:id", recordHandler.DeleteRecord)
			records.POST("/template/:id", recordHandler.PostTemplateLog)
		}

		reminders := v1.Group("/reminders")
		{
			reminders.POST("", reminderHandler.PostReminder)
			reminders.GET("", reminderHandler.GetReminders)
			reminders.PUT("/:id", reminderHandler.PutReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
			reminders.POST("/:id/toggle", reminderHandler.PostReminderToggle)
		}

		containers := v1.Group("/containers")
		{
			containers.POST("", inventoryHandler.PostContainer)
			containers.GET("", inventoryHandler.GetContainers)
			containers.PUT("/:id", inventoryHandler.PutContainer)
			containers.DELETE("/:id", inventoryHandler.DeleteContainer)
		}

		templates := v1.Group("/templates")
		{
			templates.POST("", inventoryHandler.PostTemplate)
			templates.GET("", inventoryHandler.GetTemplates)
			templates.DELETE("/:id", inventoryHandler.DeleteTemplate)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.PutProfile)
			profile.GET("/recommended-goal", profileHandler.GetRecommendedGoal)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("/today", statsHandler.GetToday)
			stats.GET("/day/:date", statsHandler.GetDay)
			stats.GET("/weekly", statsHandler.GetWeekly)
			stats.GET("/monthly", statsHandler.GetMonthly)
			stats.GET("/trends", statsHandler.GetTrends)
			stats.GET("/forecast", statsHandler.GetForecast)
			stats.GET("/best-hour", statsHandler.GetBestHour)
			stats.GET("/streak", statsHandler.GetStreak)
			stats.GET("/calendar", statsHandler.GetCalendar)
		}

		gamification := v1.Group("/gamification")
		{
			gamification.GET("", gamificationHandler.GetStatus)
			gamification.POST("/challenge/complete", gamificationHandler.PostChallengeComplete)
			gamification.GET("/achievements", gamificationHandler.GetAchievements)
		}

		export := v1.Group("/export")
		{
			export.GET("/csv", exportHandler.GetCSV)
			export.GET("/report.pdf", exportHandler.GetReport)
		}

		v1.POST("/reset", exportHandler.PostReset)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newStateStore builds the configured StateStore. The cleanup function
// releases any underlying connections.
func newStateStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.StateStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store := repository.NewPostgresStateStore(pool, cfg.Storage.StateKey, logger)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("Successfully connected to database")
		return store, pool.Close, nil
	default:
		var sealer *security.BlobSealer
		if cfg.Storage.EncryptionKey != "" {
			var err error
			sealer, err = security.NewBlobSealer([]byte(cfg.Storage.EncryptionKey))
			if err != nil {
				return nil, nil, err
			}
		}
		store := repository.NewFileStateStore(cfg.Storage.Path, sealer, logger)
		return store, func() {}, nil
	}
}
