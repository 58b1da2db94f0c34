// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits a Reading per tick on out.
// One goroutine per device. No overlap. No retries. Returns when ctx is done.
func (p *Poller) Run(ctx context.Context, out chan<- Reading) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r := p.PollOnce()
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}
