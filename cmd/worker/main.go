package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrischeme/backend/internal/bootstrap"
	"github.com/agrischeme/backend/internal/config"
	"github.com/agrischeme/backend/internal/observability/logging"
	"github.com/agrischeme/backend/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("agrischeme-worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("agrischeme-worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_failed", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeImportSubmitted(ctx, func(handlerCtx context.Context, jobID string) error {
		start := time.Now()
		workerMetrics.StartImport()

		if job, jobErr := app.ImportRepo.GetByID(handlerCtx, jobID); jobErr == nil {
			workerMetrics.ObserveQueueLag("agrischeme-worker", start.Sub(job.CreatedAt))
		}

		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()
		processErr := app.ProcessUC.ProcessByID(processCtx, jobID)
		workerMetrics.FinishImport("agrischeme-worker", time.Since(start), processErr)

		if processErr == nil {
			if job, jobErr := app.ImportRepo.GetByID(handlerCtx, jobID); jobErr == nil {
				workerMetrics.ObserveSchemeRows("agrischeme-worker", job.Inserted, job.Skipped)
			}
		}
		return processErr
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
