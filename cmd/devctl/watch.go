// cmd/devctl/watch.go
package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-devctl/internal/config"
	"github.com/tamzrod/modbus-devctl/internal/fault"
	"github.com/tamzrod/modbus-devctl/internal/metrics"
	"github.com/tamzrod/modbus-devctl/internal/poller"
	"github.com/tamzrod/modbus-devctl/internal/server"
	"github.com/tamzrod/modbus-devctl/internal/status"
)

type readingOutput struct {
	Device string    `json:"device"`
	At     time.Time `json:"at"`
	Flow   *float64  `json:"flow_sccm,omitempty"`
	Error  string    `json:"error,omitempty"`
	Health string    `json:"health"`
}

func newWatchCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the measured flow until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("interval-ms") {
				a.cfg.Watch.IntervalMs, _ = f.GetInt("interval-ms")
			}
			if f.Changed("metrics-addr") {
				a.cfg.Watch.MetricsAddr, _ = f.GetString("metrics-addr")
			}

			r, err := a.openRRG(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := &watcher{
				app:    a,
				device: "rrg",
				reader: r,
				out:    cmd.OutOrStdout(),
				count:  count,
			}
			return w.run(ctx, a.cfg.Watch)
		},
	}

	cmd.Flags().Int("interval-ms", config.DefaultIntervalMs, "poll interval in ms (overrides config)")
	cmd.Flags().String("metrics-addr", "", "serve /metrics and /healthz on this address (overrides config)")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many readings, 0 = until interrupted")
	return cmd
}

// watcher owns the status tracker; the HTTP endpoint reads it under mu.
type watcher struct {
	app    *app
	device string
	reader poller.FlowReader
	out    io.Writer
	count  int

	mu      sync.Mutex
	tracker *status.Tracker
}

func (w *watcher) snapshots() map[string]status.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return map[string]status.Snapshot{w.device: w.tracker.Snapshot()}
}

func (w *watcher) run(ctx context.Context, wc config.WatchConfig) error {
	logger := w.app.logger.With("device", w.device)

	p, err := poller.New(poller.Config{Device: w.device, Interval: wc.Interval()}, w.reader)
	if err != nil {
		return err
	}

	w.tracker = status.NewTracker()
	metrics.ObserveStatus(w.device, w.tracker.Snapshot())

	if wc.MetricsAddr != "" {
		srv := server.New(wc.MetricsAddr, w.snapshots, logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("metrics endpoint: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	readings := make(chan poller.Reading)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, readings)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// seconds_in_error advances on its own clock, independent of the poll rate
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	logger.Info("watch started", "interval", wc.Interval())

	seen := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", "readings", seen)
			return nil

		case <-secTicker.C:
			w.mu.Lock()
			changed := w.tracker.Tick()
			snap := w.tracker.Snapshot()
			w.mu.Unlock()
			if changed {
				metrics.ObserveStatus(w.device, snap)
			}

		case res := <-readings:
			w.mu.Lock()
			changed := w.tracker.Observe(res.Err)
			snap := w.tracker.Snapshot()
			w.mu.Unlock()

			if changed {
				metrics.ObserveStatus(w.device, snap)
				logger.Info("health changed", "health", status.HealthName(snap.Health), "last_error_code", snap.LastErrorCode)
			}

			if res.Err != nil {
				logger.Warn("poll failed", "err", res.Err, "kind", fault.KindOf(res.Err).String())
			} else {
				metrics.SetFlow(w.device, res.Flow)
				logger.Debug("poll ok", "flow", res.Flow)
			}

			if err := w.print(res, snap); err != nil {
				return err
			}

			seen++
			if w.count > 0 && seen >= w.count {
				logger.Info("watch stopped", "readings", seen)
				return nil
			}
		}
	}
}

func (w *watcher) print(res poller.Reading, snap status.Snapshot) error {
	health := status.HealthName(snap.Health)

	if w.app.jsonOut {
		o := readingOutput{Device: res.Device, At: res.At, Health: health}
		if res.Err != nil {
			o.Error = fault.Describe(fault.KindOf(res.Err))
		} else {
			flow := res.Flow
			o.Flow = &flow
		}
		return writeJSON(w.out, o)
	}

	ts := res.At.Format(time.RFC3339)
	if res.Err != nil {
		_, err := fmt.Fprintf(w.out, "%s %s %s %s\n", ts, res.Device, health, fault.Describe(fault.KindOf(res.Err)))
		return err
	}
	_, err := fmt.Fprintf(w.out, "%s %s %s %.3f\n", ts, res.Device, health, res.Flow)
	return err
}
