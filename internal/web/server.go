// Package web exposes the assistant over HTTP.
//
// Surface:
//
//	GET  /healthz            liveness probe
//	POST /api/query          {"query": ...} -> {"answer": ...}
//	POST /api/validate       multipart PDF -> analysis + draft link
//	GET  /api/drafts/{id}    .docx download (single use)
package web

import (
	"errors"
	"log/slog"
	"net/http"
)

// Server is the HTTP server for the assistant API.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	limit  *rateLimiter
}

// ServerConfig collects the server's dependencies.
type ServerConfig struct {
	Assistant Assistant
	Drafts    DraftStore
	Logger    *slog.Logger

	// RatePerSecond and Burst configure per-IP rate limiting.
	// Zero values select 2 req/s with a burst of 5.
	RatePerSecond float64
	Burst         int
}

// NewServer creates a Server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Assistant == nil {
		return nil, errors.New("assistant is required")
	}
	if cfg.Drafts == nil {
		return nil, errors.New("draft store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rps := cfg.RatePerSecond
	if rps == 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = 5
	}

	h := &handlers{
		assistant: cfg.Assistant,
		drafts:    cfg.Drafts,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /api/query", h.query)
	mux.HandleFunc("POST /api/validate", h.validate)
	mux.HandleFunc("GET /api/drafts/{id}", h.download)

	return &Server{
		mux:    mux,
		logger: logger,
		limit:  newRateLimiter(rps, burst),
	}, nil
}

// ServeHTTP implements http.Handler with the middleware stack:
// Recovery -> Logging -> RateLimit -> routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var handler http.Handler = s.mux
	handler = rateLimitMiddleware(s.limit, s.logger)(handler)
	handler = loggingMiddleware(s.logger)(handler)
	handler = recoveryMiddleware(s.logger)(handler)
	handler.ServeHTTP(w, r)
}
