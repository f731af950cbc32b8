package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/paperbuild/internal/metrics"
	"git.home.luguber.info/inful/paperbuild/internal/report"
)

// HTTPServer serves daemon health, status, the rendered report, and metrics.
type HTTPServer struct {
	listen     string
	daemon     *Daemon
	registry   *prom.Registry
	resultsDir string
	server     *http.Server
	boundAddr  string
}

// NewHTTPServer builds the endpoint surface. registry may be nil when metrics
// are disabled; /metrics then returns 404.
func NewHTTPServer(listen string, d *Daemon, registry *prom.Registry, resultsDir string) *HTTPServer {
	return &HTTPServer{listen: listen, daemon: d, registry: registry, resultsDir: resultsDir}
}

// Start binds the listener and serves in a background goroutine. Binding
// happens synchronously so port conflicts surface immediately.
func (s *HTTPServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.listen, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("POST /api/build", s.handleTriggerBuild)
	mux.HandleFunc("POST /api/check", s.handleTriggerCheck)
	if s.registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.registry))
	}

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.boundAddr = ln.Addr().String()
	slog.Info("HTTP server listening", "addr", s.boundAddr)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
		}
	}()
	return nil
}

// Addr reports the bound address, useful when listening on port 0.
func (s *HTTPServer) Addr() string {
	return s.boundAddr
}

// Stop gracefully shuts the server down.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.daemon.Status())
}

// handleReport serves the generated HTML report, regenerating it from the
// latest check data on each request.
func (s *HTTPServer) handleReport(w http.ResponseWriter, _ *http.Request) {
	if _, err := report.Generate(s.daemon.cfg.Checks.DataDir, s.resultsDir); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	content, err := os.ReadFile(filepath.Join(s.resultsDir, report.SummaryHTMLFile))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (s *HTTPServer) handleTriggerBuild(w http.ResponseWriter, _ *http.Request) {
	s.daemon.RequestBuild("api")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "build requested"})
}

func (s *HTTPServer) handleTriggerCheck(w http.ResponseWriter, _ *http.Request) {
	s.daemon.RequestChecks("api")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "check run requested"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
