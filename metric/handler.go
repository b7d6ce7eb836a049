package metric

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/health"
)

// Server exposes the registry over HTTP while a built pipeline is held open
type Server struct {
	addr     string
	path     string
	server   *http.Server
	listener net.Listener
	registry *MetricsRegistry
	monitor  *health.Monitor
	system   string
	mu       sync.Mutex
}

// NewServer creates a metrics server. An empty path defaults to /metrics.
func NewServer(addr, path string, registry *MetricsRegistry) *Server {
	if path == "" {
		path = "/metrics"
	}
	return &Server{
		addr:     addr,
		path:     path,
		registry: registry,
	}
}

// WithHealth reports the aggregate of monitor on /health instead of a bare probe
func (s *Server) WithHealth(system string, monitor *health.Monitor) *Server {
	s.system = system
	s.monitor = monitor
	return s
}

// Handler returns the HTTP handler serving metrics and a health probe
func (s *Server) Handler() (http.Handler, error) {
	if s.registry == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("nil registry"),
			"Server", "Handler", "metrics registry lookup")
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(
		s.registry.PrometheusRegistry(),
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))
	mux.HandleFunc("/health", s.serveHealth)
	return mux, nil
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	if s.monitor == nil {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
		return
	}

	status := s.monitor.AggregateHealth(s.system)
	code := http.StatusOK
	if status.IsUnhealthy() {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Start", "server state check")
	}

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.WrapFatal(err, "Server", "Start", fmt.Sprintf("listen on %s", s.addr))
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.server
	go func() {
		_ = srv.Serve(ln)
	}()
	return nil
}

// Stop shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	if err != nil {
		return errors.WrapTransient(err, "Server", "Stop", "http shutdown")
	}
	return nil
}

// Address returns the metrics URL, or an empty string when not running
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s%s", s.listener.Addr().String(), s.path)
}
