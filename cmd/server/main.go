package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/internal/logger"
	"github.com/naruebet/teachshare/internal/telemetry"
	"github.com/naruebet/teachshare/pkg/adapters/handler"
	"github.com/naruebet/teachshare/pkg/adapters/repository/sqlite"
	miniostorage "github.com/naruebet/teachshare/pkg/adapters/storage/minio"
	"github.com/naruebet/teachshare/pkg/config"
	"github.com/naruebet/teachshare/pkg/core/services"
)

func main() {
	cfg := config.Load()

	appLogger, err := logger.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize Object Storage
	storage, err := miniostorage.NewStorage(context.Background(),
		cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey,
		cfg.StorageBucket, cfg.StorageUseSSL)
	if err != nil {
		appLogger.Fatal("failed to connect to object storage", zap.Error(err))
	}

	// Initialize Telemetry
	tel, err := telemetry.NewTelemetry(appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize telemetry", zap.Error(err))
	}

	// Initialize Services
	linkService := services.NewLinkService(repo, storage, appLogger)
	domainService := services.NewDomainService(repo, repo, storage, appLogger)

	// Initialize Router
	mux := handler.NewRouter(cfg, linkService, domainService, storage, tel, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLogger.Info("starting server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	appLogger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server forced to shutdown", zap.Error(err))
	}
	_ = tel.Shutdown(shutdownCtx)
	appLogger.Info("server exited gracefully")
}
