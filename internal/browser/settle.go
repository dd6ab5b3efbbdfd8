package browser

import (
	"context"
	"time"
)

// Settler blocks until the page is considered stable, bounded by a maximum
// duration.
type Settler interface {
	Settle(ctx context.Context) error
}

// Delay waits unconditionally.
type Delay time.Duration

func (d Delay) Settle(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Until polls Cond every Interval and returns as soon as it holds, or after
// Max when it never does. Not reaching the condition isn't an error.
type Until struct {
	Cond     func(ctx context.Context) bool
	Interval time.Duration
	Max      time.Duration
}

func (u Until) Settle(ctx context.Context) error {
	interval := u.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	deadline := time.NewTimer(u.Max)
	defer deadline.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		if u.Cond != nil && u.Cond(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-tick.C:
		}
	}
}
