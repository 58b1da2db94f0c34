// internal/fault/fault_test.go
package fault

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestDescribe_Table(t *testing.T) {
	cases := map[Kind]string{
		None:                "No error.",
		FailedConnect:       "Error: Connection to the MODBUS device failed.",
		FailedCreateContext: "Error: Failed to create a MODBUS-RTU context.",
		FailedSetSlave:      "Error: Failed to set MODBUS slave ID.",
		FailedSetTimeout:    "Error: Failed to set MODBUS response timeout.",
		FailedReadRegister:  "Error: Failed to read a MODBUS register.",
		FailedWriteRegister: "Error: Failed to write a MODBUS register.",
		InvalidParameter:    "Error: Invalid parameter provided to function.",
		Unknown:             "Unknown error occurred.",
		Kind(42):            "Unknown error occurred.",
	}

	for k, want := range cases {
		if got := Describe(k); got != want {
			t.Fatalf("Describe(%d): got %q want %q", k, got, want)
		}
	}
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("serial: timeout")
	err := fmt.Errorf("wrapped: %w", New("rrg.SetFlow", FailedWriteRegister, cause))

	if !errors.Is(err, FailedWriteRegister) {
		t.Fatalf("expected errors.Is to match FailedWriteRegister")
	}
	if errors.Is(err, FailedReadRegister) {
		t.Fatalf("unexpected match on FailedReadRegister")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to stay in the chain")
	}
	if got := KindOf(err); got != FailedWriteRegister {
		t.Fatalf("KindOf: got %v", got)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(nil); got != None {
		t.Fatalf("nil: got %v", got)
	}
	if got := KindOf(InvalidParameter); got != InvalidParameter {
		t.Fatalf("bare kind: got %v", got)
	}
	if got := KindOf(errors.New("boom")); got != Unknown {
		t.Fatalf("foreign: got %v", got)
	}
}

func TestError_CodeAndMessage(t *testing.T) {
	e := New("device.Open", FailedSetSlave, errors.New("slave id 0 out of range"))
	if e.Code() != 1003 {
		t.Fatalf("code: got %d want 1003", e.Code())
	}
	want := "device.Open: failed_set_slave: slave id 0 out of range"
	if e.Error() != want {
		t.Fatalf("message: got %q want %q", e.Error(), want)
	}
	if got := New("relay.TurnOn", InvalidParameter, nil).Error(); got != "relay.TurnOn: invalid_parameter" {
		t.Fatalf("message without cause: got %q", got)
	}
}

func TestState_ResetSetDescribe(t *testing.T) {
	var s State
	if s.Kind() != None {
		t.Fatalf("zero value should be None")
	}

	s.Set(FailedReadRegister)
	if s.Describe() != "Error: Failed to read a MODBUS register." {
		t.Fatalf("describe after set: %q", s.Describe())
	}

	s.Reset()
	if s.Kind() != None || s.Describe() != "No error." {
		t.Fatalf("reset did not clear state")
	}

	if err := s.Record(New("op", FailedConnect, nil)); err == nil {
		t.Fatalf("Record must return its argument")
	}
	if s.Kind() != FailedConnect {
		t.Fatalf("record: got %v", s.Kind())
	}
	if err := s.Record(nil); err != nil {
		t.Fatalf("Record(nil) must return nil")
	}
	if s.Kind() != None {
		t.Fatalf("record nil: got %v", s.Kind())
	}
}

func TestState_IndependentSlots(t *testing.T) {
	var a, b State

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); a.Set(FailedWriteRegister) }()
		go func() { defer wg.Done(); b.Reset() }()
	}
	wg.Wait()

	if a.Kind() != FailedWriteRegister {
		t.Fatalf("slot a clobbered: %v", a.Kind())
	}
	if b.Kind() != None {
		t.Fatalf("slot b clobbered: %v", b.Kind())
	}
}
