package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// ErrReplayMismatch is returned when a replayed session does not end on the
// recorded board.
var ErrReplayMismatch = errors.New("engine: replay does not reproduce recorded state")

// Recording is a stored session: enough to rebuild the exact final state.
type Recording struct {
	ID        string
	GameID    string
	Seed      int64
	Level     int // starting campaign level, for games that have one
	Plies     int
	Score     int
	Outcome   string // terminal event kind, empty if abandoned
	Actions   []byte // YAML-encoded action list
	Config    []byte // YAML rule settings the game was played with, nil for defaults
	FinalHash uint64
	CreatedAt time.Time
}

// ReplayOptions controls how a recording is re-run.
type ReplayOptions struct {
	Interval time.Duration
	OnEvents func(tick uint64, events core.Events)
}

// Replay rebuilds a session from rec and checks it lands on the recorded
// state. The returned session is valid even when the error wraps
// ErrReplayMismatch, so callers can inspect where it diverged.
func Replay[S, A any](ctx context.Context, rules Rules[S, A], rec Recording, opts ReplayOptions) (*Session[S, A], error) {
	var actions []A
	if err := yaml.Unmarshal(rec.Actions, &actions); err != nil {
		return nil, fmt.Errorf("engine: cannot decode actions: %w", err)
	}

	session := NewSession(rules, rec.Seed)
	driver := &Driver[S, A]{
		Session:  session,
		Interval: opts.Interval,
		OnEvents: opts.OnEvents,
		Next: func(tick uint64) (A, bool) {
			if int(tick) > len(actions) {
				var zero A
				return zero, false
			}
			return actions[tick-1], true
		},
	}
	if err := driver.Run(ctx); err != nil {
		return session, err
	}

	if got := session.Hash(); got != rec.FinalHash {
		return session, fmt.Errorf("%w: got %016x, recorded %016x", ErrReplayMismatch, got, rec.FinalHash)
	}
	return session, nil
}
