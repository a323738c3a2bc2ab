// Package server exposes collected snapshots over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// Sampler produces one fresh snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) *types.Snapshot
}

// Server is the HTTP adapter over a Sampler. One collection runs per
// request on that request's goroutine; concurrent requests each pay the
// full probe cost, which is acceptable at monitoring-endpoint rates.
type Server struct {
	sampler        Sampler
	logger         *slog.Logger
	streamInterval time.Duration
	upgrader       websocket.Upgrader
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the request-log collaborator. The server only triggers
// logging; formatting belongs to the handler installed on the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreamInterval sets the websocket push cadence.
func WithStreamInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.streamInterval = d
		}
	}
}

// New creates a Server over the given sampler.
func New(sampler Sampler, opts ...Option) *Server {
	s := &Server{
		sampler:        sampler,
		logger:         slog.Default(),
		streamInterval: 5 * time.Second,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the route table wrapped in request logging. Anything
// outside the fixed routes gets the standard 404/405 treatment. No
// authentication is performed anywhere; that gap is deliberate and
// documented.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/v1/metrics/cpu", s.handleMetricsCPU)
	mux.HandleFunc("GET /api/v1/metrics/memory", s.handleMetricsMemory)
	mux.HandleFunc("GET /api/v1/stream", s.handleStream)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.logRequests(mux)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.sampler.Sample(r.Context())
	if r.Context().Err() != nil {
		// Client went away mid-collection; never send a partial body.
		return
	}
	s.writeJSON(w, snap)
}

func (s *Server) handleMetricsCPU(w http.ResponseWriter, r *http.Request) {
	snap := s.sampler.Sample(r.Context())
	if r.Context().Err() != nil {
		return
	}
	s.writeJSON(w, &types.Snapshot{
		Timestamp: snap.Timestamp,
		OS:        snap.OS,
		CPU:       snap.CPU,
	})
}

func (s *Server) handleMetricsMemory(w http.ResponseWriter, r *http.Request) {
	snap := s.sampler.Sample(r.Context())
	if r.Context().Err() != nil {
		return
	}
	s.writeJSON(w, &types.Snapshot{
		Timestamp: snap.Timestamp,
		OS:        snap.OS,
		Memory:    snap.Memory,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
