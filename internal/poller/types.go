// internal/poller/types.go
package poller

import "time"

// Reading is the outcome of one poll cycle.
type Reading struct {
	Device string
	At     time.Time

	Flow float64 // SCCM, valid only when Err is nil
	Err  error   // non-nil means the poll cycle failed
}
