package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/upscsamachar/newsfeed/internal/aggregate"
	"github.com/upscsamachar/newsfeed/internal/cache"
	"github.com/upscsamachar/newsfeed/internal/config"
	"github.com/upscsamachar/newsfeed/internal/feed"
	"github.com/upscsamachar/newsfeed/internal/fetch"
	"github.com/upscsamachar/newsfeed/internal/logger"
	"github.com/upscsamachar/newsfeed/internal/metrics"
	"github.com/upscsamachar/newsfeed/internal/server"
	"github.com/upscsamachar/newsfeed/internal/sources"
	"github.com/upscsamachar/newsfeed/internal/topics"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	srcs, err := sources.Load(cfg.SourcesConfigPath)
	if err != nil {
		log.Fatalf("sources registry error: %v", err)
	}
	tax, err := topics.Load(cfg.TopicsConfigPath)
	if err != nil {
		log.Fatalf("topic taxonomy error: %v", err)
	}

	fetcher := fetch.New(cfg.RequestTimeout)
	parser := feed.NewParser(cfg.MaxItemsPerFeed, cfg.DescriptionMaxChars, cfg.MaxTopicsPerItem)
	agg := aggregate.New(srcs, tax, fetcher, parser, cfg.MaxArticles)
	srv := server.New(agg, cache.New(), cfg.CacheTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/news", srv.HandleNews)
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting server", "port", cfg.Port, "sources", len(srcs), "topics", len(tax.Topics))
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
