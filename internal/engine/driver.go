package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Driver calls a session on a fixed schedule until the game ends, the input
// runs dry or ctx is cancelled. It is the headless counterpart of the
// terminal front end's tick loop.
type Driver[S, A any] struct {
	Session *Session[S, A]

	// Interval between ticks. Zero runs ticks back to back.
	Interval time.Duration

	// Next returns the action for the given tick, or false to stop.
	Next func(tick uint64) (A, bool)

	// OnEvents, if set, observes every non-empty event batch.
	OnEvents func(tick uint64, events core.Events)
}

// Run drives the session. It returns ctx.Err() if cancelled and nil when the
// game ended or Next ran out of actions.
func (d *Driver[S, A]) Run(ctx context.Context) error {
	var ticks <-chan time.Time
	if d.Interval > 0 {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for tick := uint64(1); !d.Session.Over(); tick++ {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		a, ok := d.Next(tick)
		if !ok {
			return nil
		}
		events := d.Session.Apply(a)
		if d.OnEvents != nil && len(events) > 0 {
			d.OnEvents(tick, events)
		}
	}
	return nil
}
