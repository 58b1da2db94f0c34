// internal/poller/poller.go
package poller

import (
	"errors"
	"time"
)

// FlowReader is the single operation the poller needs from a regulator.
type FlowReader interface {
	GetFlow() (float64, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device   string
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	reader FlowReader
}

// New creates a poller with immutable config.
func New(cfg Config, reader FlowReader) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("poller: device name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if reader == nil {
		return nil, errors.New("poller: reader required")
	}
	return &Poller{cfg: cfg, reader: reader}, nil
}

// PollOnce performs exactly one read. No retries.
func (p *Poller) PollOnce() Reading {
	res := Reading{
		Device: p.cfg.Device,
		At:     time.Now(),
	}

	flow, err := p.reader.GetFlow()
	if err != nil {
		res.Err = err
		return res
	}

	res.Flow = flow
	return res
}
