package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prize-rush/internal/analytics"
	"prize-rush/internal/config"
	"prize-rush/internal/db"
	"prize-rush/internal/logger"
	"prize-rush/internal/metrics"
)

// The janitor enforces the event retention window. It deletes rows older
// than EVENT_RETENTION_DAYS on the configured cron schedule and exposes
// Prometheus metrics for each run.
func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}
	cfg := config.Load()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	conn, err := db.Open()
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	if err := db.ConfigurePool(conn, cfg); err != nil {
		log.Fatal("failed to configure connection pool", zap.Error(err))
	}

	m := metrics.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := m.Register(registry); err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	svc := analytics.New(conn, log, m, cfg)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		deleted, err := svc.CleanupOldEvents(ctx, cfg.RetentionDays)
		if err != nil {
			log.Error("cleanup run failed", zap.Error(err))
			m.IncJanitorRuns(metrics.StatusFailure)
			return
		}
		log.Info("cleanup run finished", zap.Int64("deleted", deleted))
		m.IncJanitorRuns(metrics.StatusSuccess)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.JanitorSchedule, run); err != nil {
		log.Fatal("invalid janitor schedule",
			zap.String("schedule", cfg.JanitorSchedule),
			zap.Error(err))
	}
	scheduler.Start()
	log.Info("janitor started",
		zap.String("schedule", cfg.JanitorSchedule),
		zap.Int("retention_days", cfg.RetentionDays))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("janitor shutting down")
	shutdownCtx := scheduler.Stop()
	<-shutdownCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
