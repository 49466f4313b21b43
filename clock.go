package hollow

import (
	"context"
	"time"
)

// RunClock dispatches AdvanceTime every interval until ctx is done.
// It is the external scheduler that drives notification expiry and scene hazards.
func (e *Engine) RunClock(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Milliseconds()
			if elapsed <= 0 {
				continue
			}
			last = last.Add(time.Duration(elapsed) * time.Millisecond)
			if _, err := e.Dispatch(ctx, AdvanceTime{ElapsedMs: elapsed}); err != nil {
				return err
			}
		}
	}
}
