package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics and /health for watch-mode deployments.
type Server struct {
	addr    string
	server  *http.Server
	started time.Time
	lastRun atomic.Int64
}

func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// MarkRun records the completion time of a validation run for /health.
func (s *Server) MarkRun(t time.Time) {
	s.lastRun.Store(t.UnixNano())
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := struct {
			Status      string `json:"status"`
			UptimeSecs  int64  `json:"uptime_seconds"`
			LastRunUnix int64  `json:"last_run_unix,omitempty"`
		}{
			Status:     "up",
			UptimeSecs: int64(time.Since(s.started).Seconds()),
		}
		if ns := s.lastRun.Load(); ns > 0 {
			status.LastRunUnix = time.Unix(0, ns).Unix()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})

	s.started = time.Now()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
