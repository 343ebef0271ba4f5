package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haiminh/plant-disease-assistant/internal/bootstrap"
	"github.com/haiminh/plant-disease-assistant/internal/config"
	"github.com/haiminh/plant-disease-assistant/internal/observability/logging"
)

func main() {
	var (
		query    = flag.String("q", "", "free-text query for the retrieval pipeline")
		plant    = flag.String("plant", "", "plant name for exact case lookup")
		disease  = flag.String("disease", "", "disease name for exact case lookup")
		imageURL = flag.String("image-url", "", "leaf image URL for the diagnosis flow")
		history  = flag.Int("history", 0, "print the N most recent queries and exit")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewJSONLogger("query-cli", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var result any
	switch {
	case *history > 0:
		result, err = app.History.RecentQueries(runCtx, *history)
	case *query != "":
		result, err = app.QueryUC.ClassifyAndSearch(runCtx, *query)
	case *plant != "" || *disease != "":
		result, err = app.LookupUC.LookupCase(runCtx, *plant, *disease)
	case *imageURL != "":
		result, err = app.DiagnoseUC.Diagnose(runCtx, *imageURL)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("query error: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
