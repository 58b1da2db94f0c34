// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamzrod/modbus-devctl/internal/metrics"
	"github.com/tamzrod/modbus-devctl/internal/status"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestHealthz(t *testing.T) {
	snaps := map[string]status.Snapshot{"rrg": {Health: status.HealthOK}}
	s := New(":0", func() map[string]status.Snapshot { return snaps }, discard())
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ok: got %d", rec.Code)
	}

	var body map[string]deviceHealth
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["rrg"].Health != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}

	snaps["rrg"] = status.Snapshot{Health: status.HealthError, LastErrorCode: 1005, SecondsInError: 4}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("error: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"last_error_code":1005`) {
		t.Fatalf("body missing code: %s", rec.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics.SetFlow("server-test", 3.5)

	s := New(":0", func() map[string]status.Snapshot { return nil }, discard())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `devctl_rrg_flow_sccm{device="server-test"} 3.5`) {
		t.Fatalf("flow gauge not exported")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(":0", func() map[string]status.Snapshot { return nil }, discard())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestStartStop(t *testing.T) {
	s := New("127.0.0.1:0", func() map[string]status.Snapshot { return nil }, discard())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("empty device set should be healthy, got %d", resp.StatusCode)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
