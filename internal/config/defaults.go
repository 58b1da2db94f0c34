// internal/config/defaults.go
package config

import (
	"github.com/tamzrod/modbus-devctl/internal/relay"
	"github.com/tamzrod/modbus-devctl/internal/rrg"
)

const (
	DefaultRRGPort   = "/dev/ttyUSB0"
	DefaultRelayPort = "/dev/ttyUSB1"

	DefaultIntervalMs = 1000
)

// Default returns the configuration used when no file is present.
// Device parameters come from the device profiles.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RRG:   fromProfile(rrg.Profile, DefaultRRGPort),
		Relay: fromProfile(relay.Profile, DefaultRelayPort),
		Watch: WatchConfig{
			IntervalMs: DefaultIntervalMs,
		},
	}
}
