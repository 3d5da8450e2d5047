package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worklog/internal/backend"
	"worklog/internal/cache"
	"worklog/internal/cli"
	apphttp "worklog/internal/http"
	"worklog/internal/log"
	"worklog/internal/services"
	"worklog/internal/summary"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistence backend
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	// Application state: loads both collections; a corrupted store is a
	// startup failure, never silently reset.
	worklogSvc, err := services.NewWorkLogService(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load work log", log.FieldError, err)
		os.Exit(1)
	}

	// Summary collaborator (optional feature)
	var gen summary.Generator
	if cfg.SummaryEnabled() {
		g, err := summary.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize summary generator", log.FieldError, err)
			os.Exit(1)
		}
		gen = g
		logger.Info("Summary generation enabled", "model", cfg.GeminiModel)
	} else {
		logger.Info("Summary generation disabled: no API key configured")
	}
	summarySvc := summary.NewService(gen, cfg.SummaryCacheTTL)

	cacheManager := cache.NewManager()
	cacheManager.Register(summarySvc.Cache())
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, worklogSvc, summarySvc, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.SummaryTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting worklog server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
