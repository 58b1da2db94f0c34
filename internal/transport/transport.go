// internal/transport/transport.go
package transport

import "time"

// Fixed serial framing for every supported device: 8N1.
const (
	ParityNone      = "N"
	DefaultDataBits = 8
	DefaultStopBits = 1
)

// Serial is the line configuration a session is created with.
type Serial struct {
	Port     string
	BaudRate int
	Parity   string
	DataBits int
	StopBits int
}

// Session is one MODBUS-RTU transaction context bound to a serial line.
// Calls block until a response arrives or the response timeout elapses.
// A Session is not safe for concurrent use.
type Session interface {
	SetSlave(id int) error
	SetResponseTimeout(d time.Duration) error
	Connect() error

	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	WriteSingleRegister(addr, value uint16) error            // FC 6

	// Close releases the session. It must be safe on a session that never connected.
	Close() error
}

// Factory creates an unconnected session. ONE attempt per call.
type Factory func(s Serial) (Session, error)
