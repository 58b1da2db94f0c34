// internal/relay/relay.go
package relay

import (
	"errors"
	"time"

	"github.com/tamzrod/modbus-devctl/internal/device"
	"github.com/tamzrod/modbus-devctl/internal/fault"
)

// RegisterState switches the relay: 1 = on, 0 = off.
const RegisterState uint16 = 512

const (
	stateOff uint16 = 0
	stateOn  uint16 = 1
)

// Profile holds the relay's factory defaults.
var Profile = device.Profile{
	Name:     "relay",
	BaudRate: 115200,
	SlaveID:  6,
	Timeout:  10 * time.Millisecond,
}

// Relay drives one relay module. Each switch is a single register write,
// so it is atomic from the caller's side.
type Relay struct {
	h *device.Handle
}

// Open connects to a relay.
func Open(cfg device.Config, opts ...device.Option) (*Relay, error) {
	h, err := device.Open(Profile, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Relay{h: h}, nil
}

func (r *Relay) Close() {
	if r == nil {
		return
	}
	r.h.Close()
}

func (r *Relay) LastError() fault.Kind {
	if r == nil {
		return fault.InvalidParameter
	}
	return r.h.LastError()
}

func (r *Relay) Describe() string {
	return fault.Describe(r.LastError())
}

// TurnOn writes 1 unconditionally; repeating it is harmless.
func (r *Relay) TurnOn() error {
	return r.write("relay.TurnOn", stateOn)
}

// TurnOff writes 0 unconditionally.
func (r *Relay) TurnOff() error {
	return r.write("relay.TurnOff", stateOff)
}

// Set switches to on or off.
func (r *Relay) Set(on bool) error {
	if on {
		return r.TurnOn()
	}
	return r.TurnOff()
}

func (r *Relay) write(op string, v uint16) error {
	if r == nil {
		return fault.New(op, fault.InvalidParameter, errors.New("nil relay"))
	}
	return r.h.WriteRegister(op, RegisterState, v)
}
