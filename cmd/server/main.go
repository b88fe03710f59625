package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/waste-api/internal/config"
	"github.com/Brownie44l1/waste-api/internal/handlers"
	"github.com/Brownie44l1/waste-api/internal/logger"
	"github.com/Brownie44l1/waste-api/internal/model"
	"github.com/Brownie44l1/waste-api/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The listener is bound only once the model is loaded.
	classifier, err := model.Open(ctx, model.Options{
		Name:            cfg.Model.Name,
		ModelPath:       cfg.Model.Path,
		MetadataPath:    cfg.Model.MetadataPath,
		URL:             cfg.Model.URL,
		LibraryPath:     cfg.Model.LibraryPath,
		DownloadTimeout: cfg.Model.DownloadTimeout,
	}, log)
	if err != nil {
		log.Error("Failed to load model", zap.Error(err))
		return fmt.Errorf("failed to load model: %w", err)
	}
	defer func() {
		if err := classifier.Close(); err != nil {
			log.Warn("Failed to release model", zap.Error(err))
		}
	}()

	cache, err := model.NewPredictionCache(cfg.Cache.Size)
	if err != nil {
		return fmt.Errorf("failed to create prediction cache: %w", err)
	}

	h := handlers.NewHandler(classifier, cache, cfg.Server.MaxUploadBytes, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(h, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			zap.String("address", srv.Addr),
			zap.String("model", classifier.ModelName()),
			zap.Int("cache_size", cfg.Cache.Size))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
