package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-adamant/volley/config"
	"github.com/alex-adamant/volley/db"
	"github.com/alex-adamant/volley/handlers"
	"github.com/alex-adamant/volley/live"
	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
	"github.com/alex-adamant/volley/routes"
	"github.com/alex-adamant/volley/services"
	"github.com/alex-adamant/volley/storage"
)

// @title Volley Rating API
// @version 1.0
// @description Doubles volleyball match tracking and Elo rating service.
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.ExportEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("R2 not configured, rating export disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	chatRepo := repositories.NewPostgresChatRepository(dbConn)
	rosterRepo := repositories.NewPostgresRosterRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	adminRepo := repositories.NewPostgresAdminRepository(dbConn)

	jwtSecret := []byte(cfg.JWTSecretKey)

	chatService := services.NewChatService(chatRepo, matchRepo, logger)
	seasonService := services.NewSeasonService(chatRepo, seasonRepo, matchRepo, logger)
	ratingService := services.NewRatingService(chatRepo, rosterRepo, matchRepo, seasonRepo, logger)
	statsService := services.NewStatsService(ratingService, logger)
	matchService := services.NewMatchService(chatRepo, rosterRepo, matchRepo, hub, logger)
	rosterService := services.NewRosterService(chatRepo, rosterRepo, logger)
	scheduleService := services.NewScheduleService(chatRepo, rosterRepo, logger)
	authService := services.NewAuthService(adminRepo, jwtSecret, logger)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.Bootstrap(context.Background(), models.Credentials{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}); err != nil {
			logger.Error("failed to bootstrap admin account", slog.Any("error", err))
			os.Exit(1)
		}
	}

	var exportService services.ExportService
	if uploader != nil {
		exportService = services.NewExportService(ratingService, uploader, logger)
	}

	router := routes.InitRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Chat:      handlers.NewChatHandler(chatService, ratingService, statsService),
		Season:    handlers.NewSeasonHandler(seasonService),
		Match:     handlers.NewMatchHandler(matchService),
		Roster:    handlers.NewRosterHandler(rosterService),
		Schedule:  handlers.NewScheduleHandler(scheduleService),
		Export:    handlers.NewExportHandler(exportService),
		WebSocket: handlers.NewWebSocketHandler(hub, ratingService, logger),
	}, jwtSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
