// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix scopes environment overrides, e.g. DEVCTL_RRG_PORT.
const EnvPrefix = "DEVCTL"

// Load reads configuration from path, or searches the usual locations when
// path is empty. A missing file is not an error in search mode; defaults and
// environment still apply. The result is normalized and validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("devctl")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/devctl/")
		v.AddConfigPath("$HOME/.devctl")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// every key needs a default so AutomaticEnv can see it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	for name, dev := range map[string]DeviceConfig{"rrg": d.RRG, "relay": d.Relay} {
		v.SetDefault(name+".port", dev.Port)
		v.SetDefault(name+".baud_rate", dev.BaudRate)
		v.SetDefault(name+".slave_id", dev.SlaveID)
		v.SetDefault(name+".timeout_ms", dev.TimeoutMs)
	}

	v.SetDefault("watch.interval_ms", d.Watch.IntervalMs)
	v.SetDefault("watch.metrics_addr", d.Watch.MetricsAddr)
}

// Save writes cfg as YAML, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
