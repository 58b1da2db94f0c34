// internal/transport/transporttest/fake.go
package transporttest

import (
	"errors"
	"sync"
	"time"

	"github.com/tamzrod/modbus-devctl/internal/transport"
)

// ErrInjected is returned by every injected failure.
var ErrInjected = errors.New("transporttest: injected failure")

// Call records one transaction issued against the fake.
type Call struct {
	FC    uint8
	Addr  uint16
	Qty   uint16
	Value uint16
}

// Session is an in-memory register bank that records every call.
// Fail* fields inject failures; FailWriteAt fails writes to one address only.
type Session struct {
	mu sync.Mutex

	Registers map[uint16]uint16

	FailSetSlave   bool
	FailSetTimeout bool
	FailConnect    bool
	FailRead       bool
	FailWrite      bool
	FailWriteAt    *uint16
	ShortRead      bool

	Serial    transport.Serial
	SlaveID   int
	Timeout   time.Duration
	Connected bool
	Calls     []Call
	Closes    int
}

// NewSession returns an empty fake.
func NewSession() *Session {
	return &Session{Registers: make(map[uint16]uint16)}
}

// Factory returns a transport.Factory handing out s.
// failCreate makes the factory itself fail.
func Factory(s *Session, failCreate bool) transport.Factory {
	return func(line transport.Serial) (transport.Session, error) {
		if failCreate {
			return nil, ErrInjected
		}
		s.mu.Lock()
		s.Serial = line
		s.mu.Unlock()
		return s, nil
	}
}

func (s *Session) SetSlave(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSetSlave {
		return ErrInjected
	}
	s.SlaveID = id
	return nil
}

func (s *Session) SetResponseTimeout(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSetTimeout {
		return ErrInjected
	}
	s.Timeout = d
	return nil
}

func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailConnect {
		return ErrInjected
	}
	s.Connected = true
	return nil
}

func (s *Session) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, Call{FC: 3, Addr: addr, Qty: qty})
	if s.FailRead {
		return nil, ErrInjected
	}

	n := int(qty)
	if s.ShortRead && n > 0 {
		n--
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = s.Registers[addr+uint16(i)]
	}
	return out, nil
}

func (s *Session) WriteSingleRegister(addr, value uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, Call{FC: 6, Addr: addr, Qty: 1, Value: value})
	if s.FailWrite || (s.FailWriteAt != nil && *s.FailWriteAt == addr) {
		return ErrInjected
	}
	s.Registers[addr] = value
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closes++
	s.Connected = false
	return nil
}

// Writes returns only the FC 6 calls, in order.
func (s *Session) Writes() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.Calls {
		if c.FC == 6 {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears recorded calls, keeping registers and failure switches.
func (s *Session) Reset() {
	s.mu.Lock()
	s.Calls = nil
	s.mu.Unlock()
}
