// Package engine runs grid games as pure state transitions.
//
// A game supplies Rules: a starting state and a transition function
// Apply(state, action, rng) -> (state, events). A Session owns the current
// state, the seeded random source and the action log, so two sessions
// built from the same seed and fed the same actions always end on the same
// board. Scheduling is left to a Driver or to the terminal front end.
package engine

import "github.com/vovakirdan/grid-arcade/internal/core"

// Rules is the transition function of one game.
//
// Implementations must be deterministic given (state, action, rng draws) and
// must not mutate the state they are handed. An illegal action returns the
// state unchanged with no events. A finished game is reported with a
// terminal event (win, loss, draw), never with an error.
type Rules[S, A any] interface {
	// Init builds the starting state. It may draw from rng.
	Init(rng core.RNG) S

	// Apply returns the state after action a and the events it produced.
	Apply(s S, a A, rng core.RNG) (S, core.Events)

	// Hash digests the state for determinism checks and replay verification.
	Hash(s S) uint64
}
