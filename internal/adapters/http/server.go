// Package http serves a read-only inspection surface over the running arcade:
// health, the latest snapshots, a server-sent event stream and metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/sweetwater/internal/logging"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SnapshotSource provides the recorded snapshots.
type SnapshotSource interface {
	Latest(ctx context.Context) (domain.Snapshot, error)
	Load(ctx context.Context, runID string) (domain.Snapshot, error)
	List(ctx context.Context) ([]string, error)
}

// Watcher streams snapshots as they are presented.
type Watcher interface {
	Watch(ctx context.Context) (<-chan domain.Snapshot, error)
}

// Server holds the dependencies of the handlers.
type Server struct {
	Source  SnapshotSource
	Watcher Watcher
	Metrics http.Handler
	Version string
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithWatcher enables GET /events.
func WithWatcher(w Watcher) Option {
	return func(s *Server) {
		s.Watcher = w
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the inspection router.
func NewHandler(source SnapshotSource, opts ...Option) http.Handler {
	s := &Server{
		Source:  source,
		Version: "dev",
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/info", s.Info)
	r.Get("/runs", s.ListRuns)
	r.Get("/snapshot", s.GetLatest)
	r.Get("/snapshot/{runID}", s.GetSnapshot)
	if s.Watcher != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "sweetwater",
		"version": s.Version,
	})
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Source.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// GetLatest handles GET /snapshot.
func (s *Server) GetLatest(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Source.Latest(r.Context())
	s.writeSnapshot(w, snap, err)
}

// GetSnapshot handles GET /snapshot/{runID}.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Source.Load(r.Context(), chi.URLParam(r, "runID"))
	s.writeSnapshot(w, snap, err)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Watcher.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				s.Logger.Warn("Failed to encode snapshot", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeSnapshot(w http.ResponseWriter, snap domain.Snapshot, err error) {
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
	default:
		s.writeJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("Failed to encode response", "err", err)
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Inspector listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("inspector: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
