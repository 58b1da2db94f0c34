// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/modbus-devctl/internal/status"
)

// StatusFunc returns the current per-device snapshots.
type StatusFunc func() map[string]status.Snapshot

// Server exposes /metrics and /healthz for the watch loop.
type Server struct {
	addr   string
	status StatusFunc
	logger *slog.Logger

	srv *http.Server
	ln  net.Listener
}

func New(addr string, fn StatusFunc, logger *slog.Logger) *Server {
	return &Server{addr: addr, status: fn, logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	return r
}

type deviceHealth struct {
	Health         string `json:"health"`
	LastErrorCode  uint16 `json:"last_error_code"`
	SecondsInError uint16 `json:"seconds_in_error"`
}

// 200 when every device is OK, 503 otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snaps := s.status()

	body := make(map[string]deviceHealth, len(snaps))
	code := http.StatusOK
	for name, snap := range snaps {
		body[name] = deviceHealth{
			Health:         status.HealthName(snap.Health),
			LastErrorCode:  snap.LastErrorCode,
			SecondsInError: snap.SecondsInError,
		}
		if snap.Health != status.HealthOK {
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("metrics endpoint listening", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics endpoint stopped", "err", err)
		}
	}()
	return nil
}

// Addr is the bound address, valid after Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
