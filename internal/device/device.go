// internal/device/device.go
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/modbus-devctl/internal/fault"
	"github.com/tamzrod/modbus-devctl/internal/transport"
	"github.com/tamzrod/modbus-devctl/internal/transport/rtu"
)

var errNotOpen = errors.New("device: handle not open")

// Profile describes one device class: its name and factory defaults.
// Register maps live with the profile operations.
type Profile struct {
	Name     string
	BaudRate int
	SlaveID  int
	Timeout  time.Duration
}

// Config returns the profile defaults bound to port.
func (p Profile) Config(port string) Config {
	return Config{
		Port:     port,
		BaudRate: p.BaudRate,
		SlaveID:  p.SlaveID,
		Timeout:  p.Timeout,
	}
}

// Config is the caller-owned connection configuration. Open never mutates it.
type Config struct {
	Port     string
	BaudRate int
	SlaveID  int           // 1-247
	Timeout  time.Duration // 0 keeps the transport default
}

type options struct {
	factory transport.Factory
	logger  *slog.Logger
}

// Option customizes Open.
type Option func(*options)

// WithFactory replaces the default goburrow RTU transport.
func WithFactory(f transport.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithLogger sets the logger used for transaction tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Handle exclusively owns one open transport session.
// Transactions on a handle are serialized.
type Handle struct {
	profile Profile
	id      string
	logger  *slog.Logger

	mu    sync.Mutex
	sess  transport.Session
	state fault.State
}

// Open creates, configures and connects a session for cfg.
// Every failure after the session exists releases it exactly once.
func Open(p Profile, cfg Config, opts ...Option) (*Handle, error) {
	const op = "device.Open"

	o := options{logger: slog.Default()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.factory == nil {
		o.factory = rtu.NewFactory(o.logger)
	}

	if cfg.Port == "" {
		return nil, fault.New(op, fault.InvalidParameter, errors.New("port required"))
	}

	sess, err := o.factory(transport.Serial{
		Port:     cfg.Port,
		BaudRate: cfg.BaudRate,
		Parity:   transport.ParityNone,
		DataBits: transport.DefaultDataBits,
		StopBits: transport.DefaultStopBits,
	})
	if err != nil {
		return nil, fault.New(op, fault.FailedCreateContext, err)
	}
	if sess == nil {
		return nil, fault.New(op, fault.FailedCreateContext, errors.New("transport returned no session"))
	}

	release := func(kind fault.Kind, err error) (*Handle, error) {
		_ = sess.Close()
		return nil, fault.New(op, kind, err)
	}

	if err := sess.SetSlave(cfg.SlaveID); err != nil {
		return release(fault.FailedSetSlave, err)
	}
	if err := sess.SetResponseTimeout(cfg.Timeout); err != nil {
		return release(fault.FailedSetTimeout, err)
	}
	if err := sess.Connect(); err != nil {
		return release(fault.FailedConnect, err)
	}

	id := uuid.NewString()
	h := &Handle{
		profile: p,
		id:      id,
		logger: o.logger.With(
			"device", p.Name,
			"session", id,
			"port", cfg.Port,
			"slave", cfg.SlaveID,
		),
		sess: sess,
	}
	h.state.Reset()

	h.logger.Debug("session opened", "baud", cfg.BaudRate, "timeout", cfg.Timeout)
	return h, nil
}

// Close releases the session. Safe on nil, closed and never-opened handles.
func (h *Handle) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sess == nil {
		return
	}
	if err := h.sess.Close(); err != nil {
		h.logger.Debug("session close failed", "err", err)
	}
	h.sess = nil
	h.logger.Debug("session closed")
}

// IsOpen reports whether the handle still owns a session.
func (h *Handle) IsOpen() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sess != nil
}

// ID is the session identifier attached to log records.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Profile returns the descriptor the handle was opened with.
func (h *Handle) Profile() Profile {
	if h == nil {
		return Profile{}
	}
	return h.profile
}

// Logger returns the handle-scoped logger.
func (h *Handle) Logger() *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return h.logger
}

// LastError returns the kind recorded by the most recent operation on h.
func (h *Handle) LastError() fault.Kind {
	if h == nil {
		return fault.InvalidParameter
	}
	return h.state.Kind()
}

// Describe returns the sentence for LastError.
func (h *Handle) Describe() string {
	return fault.Describe(h.LastError())
}

// Reject records an InvalidParameter failure for op without touching the transport.
func (h *Handle) Reject(op string, cause error) error {
	err := fault.New(op, fault.InvalidParameter, cause)
	if h != nil {
		h.state.Set(fault.InvalidParameter)
	}
	return err
}

// ---- register transactions ----

// ReadRegisters reads qty consecutive holding registers starting at addr.
func (h *Handle) ReadRegisters(op string, addr, qty uint16) ([]uint16, error) {
	if h == nil {
		return nil, fault.New(op, fault.InvalidParameter, errNotOpen)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sess == nil {
		return nil, h.fail(op, fault.InvalidParameter, errNotOpen)
	}

	regs, err := h.sess.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, h.fail(op, fault.FailedReadRegister, fmt.Errorf("read addr=%d qty=%d: %w", addr, qty, err))
	}
	if len(regs) != int(qty) {
		return nil, h.fail(op, fault.FailedReadRegister, fmt.Errorf("read addr=%d: got %d registers, want %d", addr, len(regs), qty))
	}

	h.logger.Debug("registers read", "op", op, "addr", addr, "regs", regs)
	h.state.Reset()
	return regs, nil
}

// WriteRegister writes one holding register.
func (h *Handle) WriteRegister(op string, addr, value uint16) error {
	return h.WriteWords(op, addr, value)
}

// WriteWords writes words to consecutive registers starting at addr, one
// single-register transaction each, in order. It stops at the first failure;
// registers already written stay written (no rollback).
func (h *Handle) WriteWords(op string, addr uint16, words ...uint16) error {
	if h == nil {
		return fault.New(op, fault.InvalidParameter, errNotOpen)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sess == nil {
		return h.fail(op, fault.InvalidParameter, errNotOpen)
	}

	for i, w := range words {
		a := addr + uint16(i)
		if err := h.sess.WriteSingleRegister(a, w); err != nil {
			return h.fail(op, fault.FailedWriteRegister, fmt.Errorf("write addr=%d (%d/%d): %w", a, i+1, len(words), err))
		}
		h.logger.Debug("register written", "op", op, "addr", a, "value", w)
	}

	h.state.Reset()
	return nil
}

// fail records kind and returns the operation error. Caller holds h.mu.
func (h *Handle) fail(op string, kind fault.Kind, err error) error {
	h.state.Set(kind)
	h.logger.Debug("operation failed", "op", op, "kind", kind.String(), "err", err)
	return fault.New(op, kind, err)
}
