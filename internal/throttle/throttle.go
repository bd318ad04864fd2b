package throttle

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d, returning ctx.Err() if the context ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Limiter is consulted after each processed item of a batch run.
type Limiter interface {
	// After reports whether it paused after the item at 0-based index i of n.
	After(ctx context.Context, i, n int) (bool, error)
}

// Pacer pauses for Pause after every Every items, never after the last one.
type Pacer struct {
	Every int
	Pause time.Duration
	// OnPause runs right before the pause starts.
	OnPause func(i, n int)
	Sleep   SleepFunc
}

// ShouldPause is true on 1-based positions that are multiples of Every,
// except the final item.
func (p Pacer) ShouldPause(i, n int) bool {
	if p.Every <= 0 || p.Pause <= 0 {
		return false
	}
	return (i+1)%p.Every == 0 && i < n-1
}

func (p Pacer) After(ctx context.Context, i, n int) (bool, error) {
	if !p.ShouldPause(i, n) {
		return false, nil
	}
	if p.OnPause != nil {
		p.OnPause(i, n)
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	return true, sleep(ctx, p.Pause)
}
