// internal/config/normalize.go
package config

import "strings"

// Normalize puts user-typed fields in canonical form.
// It runs before Validate so that "INFO" or " /dev/ttyUSB0 " are accepted.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)

	cfg.RRG.Port = strings.TrimSpace(cfg.RRG.Port)
	cfg.Relay.Port = strings.TrimSpace(cfg.Relay.Port)

	cfg.Watch.MetricsAddr = strings.TrimSpace(cfg.Watch.MetricsAddr)
}
