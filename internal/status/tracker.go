// internal/status/tracker.go
package status

import "errors"

// Tracker derives a Snapshot from poll outcomes and a 1 Hz tick.
// Owned by a single goroutine; not safe for concurrent use.
type Tracker struct {
	snap Snapshot
}

// NewTracker starts in HealthUnknown.
func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown}}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Observe folds one poll outcome into the snapshot and reports whether it changed.
// seconds_in_error is advanced by Tick only.
func (t *Tracker) Observe(err error) bool {
	changed := false

	if err == nil {
		// Recovery / OK
		if t.snap.Health != HealthOK {
			t.snap.Health = HealthOK
			changed = true
		}
		if t.snap.LastErrorCode != 0 {
			t.snap.LastErrorCode = 0
			changed = true
		}
		if t.snap.SecondsInError != 0 {
			t.snap.SecondsInError = 0
			changed = true
		}
		return changed
	}

	if t.snap.Health != HealthError {
		t.snap.Health = HealthError
		changed = true
	}
	if code := ErrorCode(err); t.snap.LastErrorCode != code {
		t.snap.LastErrorCode = code
		changed = true
	}
	return changed
}

// Tick advances seconds_in_error while not OK. Reports whether it changed.
func (t *Tracker) Tick() bool {
	if t.snap.Health == HealthOK {
		return false
	}
	if t.snap.SecondsInError >= MaxSecondsInError {
		return false
	}
	t.snap.SecondsInError++
	return true
}

// ErrorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns GenericErrorCode.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return GenericErrorCode
}
