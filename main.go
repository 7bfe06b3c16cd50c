package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/airtable"
	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/config"
	"github.com/mauv0809/draft-league/internal/database"
	server "github.com/mauv0809/draft-league/internal/http"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/mauv0809/draft-league/internal/notifier/slack"
	"github.com/mauv0809/draft-league/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	ledger := audit.New(db)
	store := airtable.NewClient(
		cfg.Airtable.APIKey,
		cfg.Airtable.BaseID,
		airtable.WithBaseURL(cfg.Airtable.BaseURL),
		airtable.WithRetries(cfg.Airtable.MaxRetries, cfg.Airtable.RetryBackoff),
	)
	repo := league.New(store, metricsSvc, ledger)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID, metricsSvc)
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}()

	s := server.NewServer(repo, ledger, metricsSvc, metricsHandler, cfg, notifier, pubsubClient)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel(errors.New("caught signal: " + sig.String()))
	}()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("Server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error("Server error", "error", err)
	}
	log.Info("Server process shutting down")
}
