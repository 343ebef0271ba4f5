package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haiminh/plant-disease-assistant/internal/bootstrap"
	"github.com/haiminh/plant-disease-assistant/internal/config"
	"github.com/haiminh/plant-disease-assistant/internal/observability/logging"
)

func main() {
	backfill := flag.Bool("backfill", false, "publish every case without an embedding, then subscribe")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewJSONLogger("embed-worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.WorkerMetrics.Handler())
	metricsServer := &http.Server{
		Addr:         ":" + cfg.WorkerMetricsPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("worker metrics on :%s", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if *backfill {
		ids, err := app.Cases.CaseIDsMissingEmbedding(ctx)
		if err != nil {
			log.Fatalf("list cases for backfill: %v", err)
		}
		log.Printf("backfill: publishing %d cases", len(ids))
		for _, id := range ids {
			if err := app.Queue.PublishCaseEmbedRequested(ctx, id); err != nil {
				log.Printf("backfill publish case=%s: %v", id, err)
			}
		}
	}

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeCaseEmbedRequested(ctx, func(handlerCtx context.Context, caseID string) error {
		jobCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		app.WorkerMetrics.StartJob()
		started := time.Now()
		err := app.EmbedUC.EmbedCaseByID(jobCtx, caseID)
		app.WorkerMetrics.FinishJob("embed-worker", time.Since(started), err)
		return err
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
