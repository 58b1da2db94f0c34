// internal/fault/fault.go
package fault

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures a device operation can report.
// Values follow the device API error numbering; 0 means no error.
type Kind uint16

const (
	None                Kind = 0
	FailedConnect       Kind = 1001
	FailedCreateContext Kind = 1002
	FailedSetSlave      Kind = 1003
	FailedSetTimeout    Kind = 1004
	FailedReadRegister  Kind = 1005
	FailedWriteRegister Kind = 1006
	InvalidParameter    Kind = 1007

	// Unknown is reported for errors that did not originate in this package.
	Unknown Kind = 0xFFFF
)

const unknownDescription = "Unknown error occurred."

var descriptions = map[Kind]string{
	None:                "No error.",
	FailedConnect:       "Error: Connection to the MODBUS device failed.",
	FailedCreateContext: "Error: Failed to create a MODBUS-RTU context.",
	FailedSetSlave:      "Error: Failed to set MODBUS slave ID.",
	FailedSetTimeout:    "Error: Failed to set MODBUS response timeout.",
	FailedReadRegister:  "Error: Failed to read a MODBUS register.",
	FailedWriteRegister: "Error: Failed to write a MODBUS register.",
	InvalidParameter:    "Error: Invalid parameter provided to function.",
}

var names = map[Kind]string{
	None:                "none",
	FailedConnect:       "failed_connect",
	FailedCreateContext: "failed_create_context",
	FailedSetSlave:      "failed_set_slave",
	FailedSetTimeout:    "failed_set_timeout",
	FailedReadRegister:  "failed_read_register",
	FailedWriteRegister: "failed_write_register",
	InvalidParameter:    "invalid_parameter",
}

// Describe maps a kind to its fixed human-readable sentence.
// Descriptions are informational only; callers branch on Kind.
func Describe(k Kind) string {
	if d, ok := descriptions[k]; ok {
		return d
	}
	return unknownDescription
}

// String returns a stable snake_case name, used for log and metric labels.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// Error lets a Kind be used directly as an errors.Is target.
func (k Kind) Error() string { return Describe(k) }

// Code returns the numeric code.
func (k Kind) Code() uint16 { return uint16(k) }

// Error is the value every failing device operation returns.
// Err keeps the underlying transport error (if any) in the chain.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

// New builds an Error for op.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind.String())
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind.String(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare Kind target, so errors.Is(err, fault.FailedWriteRegister) works.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Code exposes the kind's numeric code.
func (e *Error) Code() uint16 { return e.Kind.Code() }

// KindOf extracts the Kind from err. nil maps to None; foreign errors map to Unknown.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Unknown
}
