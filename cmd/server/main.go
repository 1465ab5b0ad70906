// Package main is the entry point for the intake engine, the backend that
// drives guided brokerage account opening for multi-owner households.
//
// The application wires a small set of layers:
// - Domain layer holds the household model and the field registry
// - Modules provide validation, completion tracking, funding and navigation
// - The household service coordinates mutations and persistence
// - HTTP handlers expose the engine to wizard frontends
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcadia-advisors/intake/internal/config"
	"github.com/arcadia-advisors/intake/internal/database"
	"github.com/arcadia-advisors/intake/internal/events"
	"github.com/arcadia-advisors/intake/internal/modules/attachments"
	"github.com/arcadia-advisors/intake/internal/modules/display"
	"github.com/arcadia-advisors/intake/internal/modules/household"
	"github.com/arcadia-advisors/intake/internal/scheduler"
	"github.com/arcadia-advisors/intake/internal/server"
	"github.com/arcadia-advisors/intake/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting intake engine")

	// Open the snapshot database and apply schema migrations
	db, err := database.New(database.Config{
		Path: cfg.DatabasePath(),
		Name: "intake",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Event bus delivers engine events to the WebSocket stream
	eventBus := events.NewBus(log)

	// Household service restores the last saved session, or starts fresh
	repo := household.NewRepository(db.Conn(), log)
	svc, err := household.NewService(repo, eventBus, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize household service")
	}

	attachmentStore, err := attachments.NewStore(cfg.DataDir, db.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize attachment store")
	}

	formatter := display.NewFormatter(cfg.CurrencySymbol)

	// Background jobs: periodic snapshot checkpoint plus WAL maintenance
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.CheckpointSchedule, &scheduler.CheckpointJob{Service: svc}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register checkpoint job")
	}
	if err := sched.AddJob("@hourly", &scheduler.WALMaintenanceJob{DB: db}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register WAL maintenance job")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:         log,
		Config:      cfg,
		DB:          db,
		Household:   svc,
		Attachments: attachmentStore,
		Formatter:   formatter,
		EventBus:    eventBus,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
	})

	// Start server in goroutine so shutdown handling below can block on signals
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush any pending debounced save before the process exits
	if err := svc.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save household on shutdown")
	}

	log.Info().Msg("Server stopped")
}
