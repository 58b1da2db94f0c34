// cmd/devctl/app.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-devctl/internal/config"
	"github.com/tamzrod/modbus-devctl/internal/device"
	"github.com/tamzrod/modbus-devctl/internal/logging"
	"github.com/tamzrod/modbus-devctl/internal/metrics"
	"github.com/tamzrod/modbus-devctl/internal/relay"
	"github.com/tamzrod/modbus-devctl/internal/rrg"
	"github.com/tamzrod/modbus-devctl/internal/transport"
)

// app carries what every command needs once flags are parsed.
type app struct {
	cfgFile string
	verbose bool
	jsonOut bool

	// factory builds the transport for a device; tests swap it out.
	factory func(logger *slog.Logger) transport.Factory

	cfg      *config.Config
	logger   *slog.Logger
	closeLog io.Closer
}

// setup loads config and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	// Command line flags win over the file
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.jsonOut {
		cfg.Log.Format = "json"
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closer
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog.Close()
		a.closeLog = nil
	}
}

// addDeviceFlags registers the overrides shared by the rrg and relay groups.
func addDeviceFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("port", "", "serial port (overrides config)")
	f.Int("baud", 0, "baud rate (overrides config)")
	f.Int("slave", 0, "MODBUS slave id 1-247 (overrides config)")
	f.Int("timeout-ms", 0, "response timeout in ms, 0 = transport default (overrides config)")
}

// applyDeviceFlags copies explicitly set flags over dc, then revalidates.
func (a *app) applyDeviceFlags(cmd *cobra.Command, dc *config.DeviceConfig) error {
	f := cmd.Flags()
	var err error

	if f.Changed("port") {
		if dc.Port, err = f.GetString("port"); err != nil {
			return err
		}
	}
	if f.Changed("baud") {
		if dc.BaudRate, err = f.GetInt("baud"); err != nil {
			return err
		}
	}
	if f.Changed("slave") {
		if dc.SlaveID, err = f.GetInt("slave"); err != nil {
			return err
		}
	}
	if f.Changed("timeout-ms") {
		if dc.TimeoutMs, err = f.GetInt("timeout-ms"); err != nil {
			return err
		}
	}

	config.Normalize(a.cfg)
	return config.Validate(a.cfg)
}

func (a *app) deviceOptions(p device.Profile) []device.Option {
	return []device.Option{
		device.WithFactory(metrics.Instrument(a.factory(a.logger), p.Name)),
		device.WithLogger(a.logger),
	}
}

func (a *app) openRRG(cmd *cobra.Command) (*rrg.Regulator, error) {
	if err := a.applyDeviceFlags(cmd, &a.cfg.RRG); err != nil {
		return nil, err
	}
	return rrg.Open(a.cfg.RRG.Device(), a.deviceOptions(rrg.Profile)...)
}

func (a *app) openRelay(cmd *cobra.Command) (*relay.Relay, error) {
	if err := a.applyDeviceFlags(cmd, &a.cfg.Relay); err != nil {
		return nil, err
	}
	return relay.Open(a.cfg.Relay.Device(), a.deviceOptions(relay.Profile)...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
