package engine

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Session owns a game's state between ticks.
// It is not safe for concurrent use; each player gets their own.
type Session[S, A any] struct {
	id      string
	rules   Rules[S, A]
	seed    int64
	rng     core.RNG
	state   S
	tick    uint64
	log     []A
	outcome *core.Event
}

// NewSession starts a game from the given seed.
func NewSession[S, A any](rules Rules[S, A], seed int64) *Session[S, A] {
	s := &Session[S, A]{rules: rules}
	s.Reset(seed)
	return s
}

// Reset discards the current game and starts a fresh one from seed.
func (s *Session[S, A]) Reset(seed int64) {
	s.id = uuid.NewString()
	s.seed = seed
	s.rng = core.NewRNG(seed)
	s.state = s.rules.Init(s.rng)
	s.tick = 0
	s.log = s.log[:0]
	s.outcome = nil
}

// Apply feeds one action to the rules and records it.
// Once the game has ended, Apply is a no-op and returns nil.
func (s *Session[S, A]) Apply(a A) core.Events {
	if s.outcome != nil {
		return nil
	}

	next, events := s.rules.Apply(s.state, a, s.rng)
	s.state = next
	s.tick++
	s.log = append(s.log, a)

	if out, ok := events.Outcome(); ok {
		s.outcome = &out
	}
	return events
}

// State returns the current state.
func (s *Session[S, A]) State() S { return s.state }

// ID returns the identifier assigned at the last Reset.
func (s *Session[S, A]) ID() string { return s.id }

// Seed returns the seed the current game was started with.
func (s *Session[S, A]) Seed() int64 { return s.seed }

// Tick returns how many actions have been applied.
func (s *Session[S, A]) Tick() uint64 { return s.tick }

// Hash digests the current state.
func (s *Session[S, A]) Hash() uint64 { return s.rules.Hash(s.state) }

// Over reports whether a terminal event has been seen.
func (s *Session[S, A]) Over() bool { return s.outcome != nil }

// Outcome returns the terminal event, if the game has ended.
func (s *Session[S, A]) Outcome() (core.Event, bool) {
	if s.outcome == nil {
		return core.Event{}, false
	}
	return *s.outcome, true
}

// Actions returns a copy of the action log.
func (s *Session[S, A]) Actions() []A {
	out := make([]A, len(s.log))
	copy(out, s.log)
	return out
}

// Record captures the session so it can be stored and replayed later.
func (s *Session[S, A]) Record(gameID string, score int) (Recording, error) {
	actions, err := yaml.Marshal(s.log)
	if err != nil {
		return Recording{}, fmt.Errorf("engine: cannot encode actions: %w", err)
	}

	rec := Recording{
		ID:        s.id,
		GameID:    gameID,
		Seed:      s.seed,
		Plies:     len(s.log),
		Score:     score,
		Actions:   actions,
		FinalHash: s.Hash(),
	}
	if out, ok := s.Outcome(); ok {
		rec.Outcome = out.Kind.String()
	}
	return rec, nil
}
