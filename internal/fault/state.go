// internal/fault/state.go
package fault

import "sync"

// State is a last-error slot. Each device handle owns one, so operations on
// different handles never overwrite each other's error.
type State struct {
	mu   sync.Mutex
	kind Kind
}

// Reset clears the slot back to None.
func (s *State) Reset() {
	s.mu.Lock()
	s.kind = None
	s.mu.Unlock()
}

// Set overwrites the slot unconditionally.
func (s *State) Set(k Kind) {
	s.mu.Lock()
	s.kind = k
	s.mu.Unlock()
}

// Record sets the slot from err (reset when err is nil) and returns err unchanged.
func (s *State) Record(err error) error {
	s.Set(KindOf(err))
	return err
}

// Kind returns the current kind.
func (s *State) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Describe returns the sentence for the current kind.
func (s *State) Describe() string {
	return Describe(s.Kind())
}
