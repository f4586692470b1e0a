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

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/config"
	"github.com/DCirincione/ASLWebsite/handlers"
	"github.com/DCirincione/ASLWebsite/repositories"
	api "github.com/DCirincione/ASLWebsite/routes"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/DCirincione/ASLWebsite/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	backendCfg := backend.Config{
		BaseURL: cfg.BackendURL,
		APIKey:  cfg.BackendAnonKey,
	}
	rowClient := backend.NewClient(backendCfg)
	authClient := backend.NewAuthClient(backendCfg)
	if cfg.BackendConfigured() {
		logger.Info("hosted backend client initialized", slog.String("url", cfg.BackendURL))
	} else {
		logger.Warn("backend credentials missing, serving fallback content only")
	}

	var uploader storage.FileUploader
	if cfg.StorageConfigured() {
		uploader, err = storage.NewS3Uploader(storage.S3UploaderConfig{
			Endpoint:        cfg.StorageEndpoint,
			AccessKeyID:     cfg.StorageAccessKeyID,
			SecretAccessKey: cfg.StorageSecretAccessKey,
			BucketName:      cfg.StorageBucket,
			PublicBaseURL:   cfg.StoragePublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize blob storage uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("blob storage uploader initialized", slog.String("bucket", cfg.StorageBucket))
	} else {
		uploader = storage.NewDisabledUploader()
		logger.Warn("blob storage not configured, file uploads disabled")
	}

	profileRepo := repositories.NewRESTProfileRepository(rowClient)
	teamRepo := repositories.NewRESTTeamRepository(rowClient)
	friendRepo := repositories.NewRESTFriendRequestRepository(rowClient)
	eventRepo := repositories.NewRESTEventRepository(rowClient)
	signupRepo := repositories.NewRESTSignupRepository(rowClient)
	sportRepo := repositories.NewRESTSportRepository(rowClient)
	registrationRepo := repositories.NewRESTRegistrationRepository(rowClient)
	logger.Info("repositories initialized")

	eventService := services.NewEventService(eventRepo, signupRepo)
	friendService := services.NewFriendService(friendRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo, teamRepo, friendRepo, uploader)
	sportService := services.NewSportService(sportRepo, eventRepo)
	registrationService := services.NewRegistrationService(registrationRepo, uploader)
	logger.Info("services initialized")

	pageHandler := handlers.NewPageHandler(eventService)
	authHandler := handlers.NewAuthHandler(authClient, profileService)
	eventHandler := handlers.NewEventHandler(eventService)
	sportHandler := handlers.NewSportHandler(sportService)
	friendHandler := handlers.NewFriendHandler(friendService)
	accountHandler := handlers.NewAccountHandler(profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.AllowedOrigins,
		cfg.BackendJWTSecret,
		pageHandler,
		authHandler,
		eventHandler,
		sportHandler,
		friendHandler,
		accountHandler,
		profileHandler,
		registrationHandler,
	)
	logger.Info("routes configured")

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
		logger.Info("server stopped gracefully")
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
	logger.Info("application exited")
}
