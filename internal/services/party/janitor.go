package party

import (
	"context"
	"time"
)

// DefaultJanitorInterval is how often empty parties are swept
const DefaultJanitorInterval = time.Minute

// RunJanitor periodically sweeps parties whose grace period has expired.
// It blocks until ctx is cancelled.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
