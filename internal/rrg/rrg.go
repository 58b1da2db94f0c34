// internal/rrg/rrg.go
package rrg

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tamzrod/modbus-devctl/internal/codec"
	"github.com/tamzrod/modbus-devctl/internal/device"
	"github.com/tamzrod/modbus-devctl/internal/fault"
)

// Register map. These must match the device exactly; a wrong address is a
// silent correctness bug, not a caught error.
const (
	RegisterSetpoint uint16 = 2053 // high word; low word at 2054
	RegisterFlow     uint16 = 2103 // 2103-2104, high word first
	RegisterGas      uint16 = 2100
	RegisterTare     uint16 = 39

	tareTrigger uint16 = 1
)

// Profile holds the regulator's factory defaults.
var Profile = device.Profile{
	Name:     "rrg",
	BaudRate: 38400,
	SlaveID:  1,
	Timeout:  50 * time.Millisecond,
}

// MaxSetpoint is the largest setpoint the 32-bit register pair can carry.
const MaxSetpoint = float64(math.MaxInt32) / codec.FlowScale

// Regulator drives one gas-flow regulator.
type Regulator struct {
	h *device.Handle
}

// Open connects to a regulator.
func Open(cfg device.Config, opts ...device.Option) (*Regulator, error) {
	h, err := device.Open(Profile, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Regulator{h: h}, nil
}

// Close releases the connection. Safe to call more than once.
func (r *Regulator) Close() {
	if r == nil {
		return
	}
	r.h.Close()
}

// LastError returns the kind recorded by the most recent operation.
func (r *Regulator) LastError() fault.Kind {
	if r == nil {
		return fault.InvalidParameter
	}
	return r.h.LastError()
}

// Describe returns the sentence for LastError.
func (r *Regulator) Describe() string {
	return fault.Describe(r.LastError())
}

// SetFlow writes a flow setpoint in SCCM.
//
// The setpoint spans two registers written one after another. If the second
// write fails the device holds a new high word with the old low word; callers
// must treat any error as "state unknown" and re-read.
func (r *Regulator) SetFlow(sccm float64) error {
	const op = "rrg.SetFlow"
	if r == nil {
		return fault.New(op, fault.InvalidParameter, errors.New("nil regulator"))
	}

	if math.IsNaN(sccm) || sccm < 0 {
		return r.h.Reject(op, fmt.Errorf("setpoint %v must be non-negative", sccm))
	}
	high, low, err := codec.EncodeFixedPoint(sccm, codec.FlowScale)
	if err != nil {
		return r.h.Reject(op, fmt.Errorf("setpoint %v: %w", sccm, err))
	}

	return r.h.WriteWords(op, RegisterSetpoint, high, low)
}

// GetFlow reads the measured flow in SCCM.
func (r *Regulator) GetFlow() (float64, error) {
	const op = "rrg.GetFlow"
	if r == nil {
		return 0, fault.New(op, fault.InvalidParameter, errors.New("nil regulator"))
	}

	regs, err := r.h.ReadRegisters(op, RegisterFlow, 2)
	if err != nil {
		return 0, err
	}
	return codec.DecodeFixedPoint(regs[0], regs[1], codec.FlowScale), nil
}

// SetGas selects the active gas calibration profile (e.g. 7 for helium).
// The id is sent as one 16-bit word; values outside 0-65535 are truncated.
func (r *Regulator) SetGas(gasID int) error {
	const op = "rrg.SetGas"
	if r == nil {
		return fault.New(op, fault.InvalidParameter, errors.New("nil regulator"))
	}

	if gasID < 0 || gasID > math.MaxUint16 {
		r.h.Logger().Warn("gas id truncated to 16 bits", "gas_id", gasID, "sent", uint16(gasID))
	}
	return r.h.WriteRegister(op, RegisterGas, uint16(gasID))
}

// Tare zeroes the flow sensor.
func (r *Regulator) Tare() error {
	const op = "rrg.Tare"
	if r == nil {
		return fault.New(op, fault.InvalidParameter, errors.New("nil regulator"))
	}
	return r.h.WriteRegister(op, RegisterTare, tareTrigger)
}

// Handle exposes the underlying connection.
func (r *Regulator) Handle() *device.Handle {
	if r == nil {
		return nil
	}
	return r.h
}
