package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/ivanachess/internal/api"
	"github.com/vytor/ivanachess/internal/config"
	"github.com/vytor/ivanachess/internal/db"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/jobs"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/repository/sqlite"
	"github.com/vytor/ivanachess/internal/services"
	"github.com/vytor/ivanachess/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Ivana Chess Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("reconcile_on_start=%t", cfg.ReconcileOnStart)
	log.Debug("default_page_size=%d", cfg.DefaultPageSize)
	log.Debug("max_page_size=%d", cfg.MaxPageSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories and services
	gameRepo := sqlite.NewGameRepository(database.DB)
	moveRepo := sqlite.NewMoveRepository(database.DB)
	gameService := services.NewGameService(gameRepo, moveRepo, engine.AsciiSerializer{})

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, gameRepo, gameService)
	matchmakingService := services.NewMatchmakingService(gameService, queue)
	queue.SetMatcher(matchmakingService)

	srv := &api.Server{
		GameService:        gameService,
		MatchmakingService: matchmakingService,
		DB:                 database,
		DefaultPageSize:    cfg.DefaultPageSize,
		MaxPageSize:        cfg.MaxPageSize,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	if cfg.ReconcileOnStart {
		if err := queue.EnqueueReconcileAll(); err != nil {
			log.Warn("failed to queue startup reconcile: %v", err)
		}
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// In-flight requests finish before workers go away.
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("Ivana Chess Server Stopped")
	log.Info("===========================================")
}
