// Package server is the HTTP boundary: CORS, cache-control, JSON encoding
// and the last-resort error boundary around the aggregation pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/upscsamachar/newsfeed/internal/aggregate"
	"github.com/upscsamachar/newsfeed/internal/cache"
	"github.com/upscsamachar/newsfeed/internal/logger"
	"github.com/upscsamachar/newsfeed/internal/metrics"
)

// Aggregator produces the full response payload.
type Aggregator interface {
	Run(ctx context.Context) *aggregate.Response
}

type Server struct {
	agg      Aggregator
	cache    *cache.ResponseCache
	cacheTTL time.Duration
}

func New(agg Aggregator, responseCache *cache.ResponseCache, cacheTTL time.Duration) *Server {
	return &Server{agg: agg, cache: responseCache, cacheTTL: cacheTTL}
}

// HandleNews serves the aggregated payload. OPTIONS pre-flights get 204
// with no processing; anything unexpected in the pipeline becomes a 500
// with a JSON message, CORS headers still attached.
func (s *Server) HandleNews(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
		// fallthrough to aggregation
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("request handling panicked", "panic", rec)
			metrics.Global.SetError(fmt.Sprintf("%v", rec))
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	metrics.Global.IncrementRequestsServed()

	resp, ok := s.cache.Get()
	if ok {
		metrics.Global.IncrementCacheHits()
	} else {
		resp = s.agg.Run(r.Context())
		s.cache.Set(resp, s.cacheTTL)
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logger.Error("error response encode failed", "error", err)
	}
}
