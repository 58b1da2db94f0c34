// internal/config/config.go
package config

import (
	"time"

	"github.com/tamzrod/modbus-devctl/internal/device"
)

type Config struct {
	Log   LogConfig    `yaml:"log" mapstructure:"log"`
	RRG   DeviceConfig `yaml:"rrg" mapstructure:"rrg"`
	Relay DeviceConfig `yaml:"relay" mapstructure:"relay"`
	Watch WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
	File   string `yaml:"file" mapstructure:"file"` // empty = stderr
}

// ---- DEVICE ----

type DeviceConfig struct {
	Port      string `yaml:"port" mapstructure:"port" validate:"required"`
	BaudRate  int    `yaml:"baud_rate" mapstructure:"baud_rate" validate:"gt=0"`
	SlaveID   int    `yaml:"slave_id" mapstructure:"slave_id" validate:"min=1,max=247"`
	TimeoutMs int    `yaml:"timeout_ms" mapstructure:"timeout_ms" validate:"gte=0"` // 0 = transport default
}

// Device converts the file form into the connection parameters Open takes.
func (d DeviceConfig) Device() device.Config {
	return device.Config{
		Port:     d.Port,
		BaudRate: d.BaudRate,
		SlaveID:  d.SlaveID,
		Timeout:  time.Duration(d.TimeoutMs) * time.Millisecond,
	}
}

func fromProfile(p device.Profile, port string) DeviceConfig {
	return DeviceConfig{
		Port:      port,
		BaudRate:  p.BaudRate,
		SlaveID:   p.SlaveID,
		TimeoutMs: int(p.Timeout / time.Millisecond),
	}
}

// ---- WATCH ----

type WatchConfig struct {
	IntervalMs  int    `yaml:"interval_ms" mapstructure:"interval_ms" validate:"gt=0"`
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr"` // empty = no HTTP endpoint
}

func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMs) * time.Millisecond
}
