package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/jamsa/articlegen/internal/app"
	"github.com/jamsa/articlegen/internal/config"
	"github.com/jamsa/articlegen/internal/logger"
	"github.com/jamsa/articlegen/internal/metrics"
	"github.com/jamsa/articlegen/internal/trends"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.InputFile, "input", "", "article store JSON file (default from ARTICLES_FILE)")
	flag.StringVar(&opts.LegacyFile, "legacy", "", "legacy article store to merge in before deduplication")
	flag.IntVar(&opts.GenerateCount, "generate", 0, "draft this many new articles from trending keywords first")
	flag.BoolVar(&opts.SkipBackup, "skip-backup", false, "skip creating backups")
	flag.BoolVar(&opts.SkipEnhance, "skip-enhance", false, "skip the article enhancement stage")
	flag.BoolVar(&opts.SkipSite, "skip-site", false, "skip downstream site regeneration")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "report what would be done without writing any file")
	flag.BoolVar(&opts.Interactive, "interactive", false, "ask for confirmation between stages")
	flag.BoolVar(&opts.ConsolidateCategories, "consolidate-categories", false, "fold variant category names onto the canonical set")
	fetchTrends := flag.Bool("fetch-trends", false, "print current trending keywords and exit")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *fetchTrends {
		if err := printTrends(ctx, cfg); err != nil {
			logger.Error("trend fetch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	if err := app.Run(ctx, cfg, opts); err != nil {
		if errors.Is(err, app.ErrValidationIssues) {
			logger.Warn("pipeline finished with validation issues", "error", err)
		} else {
			logger.Error("pipeline failed", "error", err)
		}
		os.Exit(1)
	}
}

func printTrends(ctx context.Context, cfg *config.Config) error {
	sources, err := trends.LoadFeeds(cfg.TrendsConfigPath)
	if err != nil {
		return err
	}
	keywords := trends.Fetch(ctx, sources, cfg.RequestTimeout)
	for _, kw := range keywords {
		if kw.Traffic != "" {
			fmt.Printf("%s\t%s\t%s\n", kw.Region, kw.Term, kw.Traffic)
		} else {
			fmt.Printf("%s\t%s\n", kw.Region, kw.Term)
		}
	}
	return nil
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
