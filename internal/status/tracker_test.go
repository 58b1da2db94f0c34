// internal/status/tracker_test.go
package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tamzrod/modbus-devctl/internal/fault"
)

func TestTracker_StartsUnknown(t *testing.T) {
	tr := NewTracker()
	if tr.Snapshot().Health != HealthUnknown {
		t.Fatalf("expected HealthUnknown, got %d", tr.Snapshot().Health)
	}
	// unknown counts as not OK
	if !tr.Tick() || tr.Snapshot().SecondsInError != 1 {
		t.Fatalf("tick should advance while unknown")
	}
}

func TestTracker_ErrorThenRecovery(t *testing.T) {
	tr := NewTracker()

	err := fault.New("rrg.GetFlow", fault.FailedReadRegister, errors.New("timeout"))
	if !tr.Observe(err) {
		t.Fatalf("first error should change snapshot")
	}
	s := tr.Snapshot()
	if s.Health != HealthError || s.LastErrorCode != 1005 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}

	// same error again: no change
	if tr.Observe(err) {
		t.Fatalf("repeated error should not change snapshot")
	}

	tr.Tick()
	tr.Tick()
	if tr.Snapshot().SecondsInError != 2 {
		t.Fatalf("seconds in error: got %d", tr.Snapshot().SecondsInError)
	}

	if !tr.Observe(nil) {
		t.Fatalf("recovery should change snapshot")
	}
	s = tr.Snapshot()
	if s.Health != HealthOK || s.LastErrorCode != 0 || s.SecondsInError != 0 {
		t.Fatalf("recovery not applied: %+v", s)
	}

	if tr.Tick() {
		t.Fatalf("tick must not advance while OK")
	}
}

func TestTracker_SecondsInErrorDoesNotWrap(t *testing.T) {
	tr := NewTracker()
	tr.Observe(errors.New("boom"))
	tr.snap.SecondsInError = MaxSecondsInError

	if tr.Tick() {
		t.Fatalf("tick at max should report no change")
	}
	if tr.Snapshot().SecondsInError != MaxSecondsInError {
		t.Fatalf("seconds in error wrapped: %d", tr.Snapshot().SecondsInError)
	}
}

func TestErrorCode(t *testing.T) {
	if ErrorCode(nil) != 0 {
		t.Fatalf("nil should map to 0")
	}
	if got := ErrorCode(errors.New("plain")); got != GenericErrorCode {
		t.Fatalf("plain error: got %d", got)
	}
	wrapped := fmt.Errorf("poll: %w", fault.New("op", fault.FailedConnect, nil))
	if got := ErrorCode(wrapped); got != 1001 {
		t.Fatalf("wrapped fault: got %d", got)
	}
}

func TestHealthName(t *testing.T) {
	if HealthName(HealthOK) != "ok" || HealthName(HealthError) != "error" || HealthName(HealthUnknown) != "unknown" {
		t.Fatalf("unexpected health names")
	}
}
