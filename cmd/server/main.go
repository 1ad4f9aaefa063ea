package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/synapses/sfdr-navigator/internal/clients/oracle"
	"github.com/synapses/sfdr-navigator/internal/config"
	"github.com/synapses/sfdr-navigator/internal/database"
	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/analytics"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/modules/classification"
	"github.com/synapses/sfdr-navigator/internal/modules/risk"
	"github.com/synapses/sfdr-navigator/internal/scheduler"
	"github.com/synapses/sfdr-navigator/internal/server"
	"github.com/synapses/sfdr-navigator/internal/weights"
	"github.com/synapses/sfdr-navigator/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting SFDR Navigator")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Load scoring weights (defaults plus optional YAML overrides)
	w, err := weights.NewLoader(log).Load(cfg.WeightsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scoring weights")
	}

	// Event manager
	eventMgr := events.NewManager(log)

	// Repositories
	assessRepo := assessments.NewRepository(db.Conn(), log)
	riskRepo := risk.NewRepository(db.Conn(), log)

	// Oracle client (optional external classifier)
	oracleClient := oracle.NewClient(cfg.OracleURL, log)
	if oracleClient.Enabled() {
		log.Info().Str("url", cfg.OracleURL).Msg("Oracle classifier configured")
	} else {
		log.Info().Msg("No oracle configured, using local classifier only")
	}

	// Services
	classificationService := classification.NewService(w, assessRepo, oracleClient, eventMgr, log)
	riskService := risk.NewService(w, assessRepo, riskRepo, eventMgr, log)
	analyticsService := analytics.NewService(assessRepo, riskRepo, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	reviewJob := scheduler.NewReviewScanJob(riskRepo, eventMgr, log)
	if err := sched.AddJob("@daily", reviewJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register review scan job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		DevMode: cfg.DevMode,

		Classification: classification.NewHandler(classificationService, log),
		Risk:           risk.NewHandler(riskService, log),
		Assessments:    assessments.NewHandler(assessRepo, log),
		Analytics:      analytics.NewHandler(analyticsService, log),
		Oracle:         oracleClient,
		Scheduler:      sched,
		ReviewJob:      reviewJob,
	})

	// Start server in goroutine
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

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
