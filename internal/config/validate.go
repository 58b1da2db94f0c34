// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf(
				"config: %s fails %q (got %v)",
				fe.Namespace(),
				fe.Tag(),
				fe.Value(),
			)
		}
		return fmt.Errorf("config: %w", err)
	}

	// ------------------------------------------------------------
	// CROSS-FIELD CHECKS
	// ------------------------------------------------------------

	if cfg.RRG.Port == cfg.Relay.Port && cfg.RRG.SlaveID == cfg.Relay.SlaveID {
		return fmt.Errorf(
			"config: rrg and relay share port %s and slave_id %d",
			cfg.RRG.Port,
			cfg.RRG.SlaveID,
		)
	}

	if addr := cfg.Watch.MetricsAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("config: watch.metrics_addr %q: %w", addr, err)
		}
	}

	return nil
}
