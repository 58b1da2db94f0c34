// internal/transport/rtu/rtu.go
package rtu

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/modbus-devctl/internal/codec"
	"github.com/tamzrod/modbus-devctl/internal/transport"
)

// Slave addresses a serial bus can carry (0 is broadcast, not addressable).
const (
	MinSlaveID = 1
	MaxSlaveID = 247
)

// Session implements transport.Session on top of goburrow's RTU client handler.
type Session struct {
	handler *modbus.RTUClientHandler
	client  modbus.Client
}

// NewFactory returns a transport.Factory producing goburrow RTU sessions.
// Frame dumps from the handler go to logger at debug level; nil disables them.
func NewFactory(logger *slog.Logger) transport.Factory {
	return func(s transport.Serial) (transport.Session, error) {
		sess, err := New(s)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			sess.handler.Logger = slog.NewLogLogger(logger.Handler(), slog.LevelDebug)
		}
		return sess, nil
	}
}

// New creates an unconnected session for the given line.
func New(s transport.Serial) (*Session, error) {
	if s.Port == "" {
		return nil, errors.New("rtu: port required")
	}
	if s.BaudRate <= 0 {
		return nil, fmt.Errorf("rtu: invalid baud rate %d", s.BaudRate)
	}

	h := modbus.NewRTUClientHandler(s.Port)
	h.BaudRate = s.BaudRate
	h.Parity = s.Parity
	h.DataBits = s.DataBits
	h.StopBits = s.StopBits

	if h.Parity == "" {
		h.Parity = transport.ParityNone
	}
	if h.DataBits == 0 {
		h.DataBits = transport.DefaultDataBits
	}
	if h.StopBits == 0 {
		h.StopBits = transport.DefaultStopBits
	}

	return &Session{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// ---- transport.Session ----

func (s *Session) SetSlave(id int) error {
	if id < MinSlaveID || id > MaxSlaveID {
		return fmt.Errorf("rtu: slave id %d out of range %d-%d", id, MinSlaveID, MaxSlaveID)
	}
	s.handler.SlaveId = byte(id)
	return nil
}

// SetResponseTimeout sets the per-transaction timeout.
// Zero keeps the handler's default.
func (s *Session) SetResponseTimeout(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("rtu: negative response timeout %s", d)
	}
	if d > 0 {
		s.handler.Timeout = d
	}
	return nil
}

func (s *Session) Connect() error {
	if err := s.handler.Connect(); err != nil {
		return fmt.Errorf("rtu: connect %s: %w", s.handler.Address, err)
	}
	return nil
}

func (s *Session) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	raw, err := s.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(qty)*2 {
		return nil, fmt.Errorf("rtu: read %d bytes, want %d", len(raw), int(qty)*2)
	}
	return codec.UnpackRegisters(raw), nil
}

func (s *Session) WriteSingleRegister(addr, value uint16) error {
	_, err := s.client.WriteSingleRegister(addr, value)
	return err
}

// Close closes the serial line. Safe on a handler that never connected.
func (s *Session) Close() error {
	if s == nil || s.handler == nil {
		return nil
	}
	return s.handler.Close()
}

// Settings reports the effective handler configuration.
func (s *Session) Settings() (transport.Serial, byte, time.Duration) {
	return transport.Serial{
		Port:     s.handler.Address,
		BaudRate: s.handler.BaudRate,
		Parity:   s.handler.Parity,
		DataBits: s.handler.DataBits,
		StopBits: s.handler.StopBits,
	}, s.handler.SlaveId, s.handler.Timeout
}
