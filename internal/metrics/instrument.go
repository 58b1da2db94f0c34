// internal/metrics/instrument.go
package metrics

import (
	"time"

	"github.com/tamzrod/modbus-devctl/internal/transport"
)

// Instrument wraps a factory so every session it creates reports
// connects and transactions under the given device label.
func Instrument(next transport.Factory, device string) transport.Factory {
	return func(s transport.Serial) (transport.Session, error) {
		sess, err := next(s)
		if err != nil {
			return nil, err
		}
		return &session{Session: sess, device: device}, nil
	}
}

type session struct {
	transport.Session
	device string
}

func (s *session) Connect() error {
	err := s.Session.Connect()
	Connects.WithLabelValues(s.device, result(err)).Inc()
	return err
}

func (s *session) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	start := time.Now()
	regs, err := s.Session.ReadHoldingRegisters(addr, qty)
	s.observe(FCReadHolding, start, err)
	return regs, err
}

func (s *session) WriteSingleRegister(addr, value uint16) error {
	start := time.Now()
	err := s.Session.WriteSingleRegister(addr, value)
	s.observe(FCWriteSingle, start, err)
	return err
}

func (s *session) observe(fc string, start time.Time, err error) {
	TransactionSeconds.WithLabelValues(s.device, fc).Observe(time.Since(start).Seconds())
	Transactions.WithLabelValues(s.device, fc, result(err)).Inc()
}
