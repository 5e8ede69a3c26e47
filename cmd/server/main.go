package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ynastt/course-admin/internal/config"
	"github.com/ynastt/course-admin/internal/handlers"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/internal/service"
	"github.com/ynastt/course-admin/internal/service/course"
	"github.com/ynastt/course-admin/internal/service/customfield"
	"github.com/ynastt/course-admin/internal/service/product"
	"github.com/ynastt/course-admin/internal/service/team"
	"github.com/ynastt/course-admin/internal/service/upload"
	"github.com/ynastt/course-admin/pkg/cache"
	"github.com/ynastt/course-admin/pkg/database"
	"github.com/ynastt/course-admin/pkg/queue"
	"github.com/ynastt/course-admin/pkg/storage"
	"github.com/ynastt/course-admin/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to initialize db", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error occurred on closing database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed gracefully")
		}
	}()

	if err := database.Migrate(db, cfg.MigrationsDir, logger); err != nil {
		logger.Error("migration error", slog.Any("error", err))
		os.Exit(1)
	}

	dbInstance := database.NewDB(db)
	txManager, err := database.NewTransactionManager(db)
	if err != nil {
		logger.Error("error creating transaction manager", slog.Any("error", err))
		os.Exit(1)
	}

	var rosterCache team.RosterCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		rosterCache = cache.NewJSONCache(rdb, cfg.TeamsCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, team roster cache disabled")
	}

	teamRepo := repository.NewTeamRepository(dbInstance)
	courseRepo := repository.NewCourseRepository(dbInstance)
	videoRepo := repository.NewVideoRepository(dbInstance)
	fieldRepo := repository.NewCustomFieldRepository(dbInstance)
	productRepo := repository.NewProductRepository(dbInstance)

	services := &service.Services{
		TeamService:        team.NewTeamService(teamRepo, rosterCache, txManager, logger),
		CourseService:      course.NewCourseService(courseRepo, videoRepo, txManager, logger),
		CustomFieldService: customfield.NewCustomFieldService(fieldRepo, teamRepo, txManager, logger),
		ProductService:     product.NewProductService(productRepo, fieldRepo, teamRepo, txManager, logger),
	}

	if cfg.UploadsEnabled() {
		store, err := storage.NewMinioStore(ctx, cfg.Minio)
		if err != nil {
			logger.Error("failed to connect to object storage", slog.Any("error", err))
			os.Exit(1)
		}
		publisher, err := queue.NewPublisher(cfg.AMQPURL, queue.TranscodeQueue)
		if err != nil {
			logger.Error("failed to connect to message broker", slog.Any("error", err))
			os.Exit(1)
		}
		defer publisher.Close()
		services.UploadService = upload.NewUploadService(store, publisher, cfg.PlaybackBaseURL, logger)
	} else {
		logger.Warn("object storage or broker not configured, video uploads disabled")
	}

	handlers := handlers.NewHandler(services, logger)

	srv := new(server.Server)
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("port", cfg.ServerPort))
		if err := srv.Run(cfg.ServerPort, handlers.InitRoutes()); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logger.Info("gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error occurred on server shutting down", slog.Any("error", err))
		}
		logger.Info("server stopped gracefully")
	case err := <-serverErrors:
		logger.Error("error occurred while running server", slog.Any("error", err))
		os.Exit(1)
	}
}
