package checkers

import (
	"slices"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// State is one checkers position.
type State struct {
	Board Board
	Turn  core.PlayerID

	// Chaining is set while the side to move is in the middle of a capture
	// chain; only further captures by the piece on Chain are legal.
	Chaining bool
	Chain    grid.Coord

	Captured [3]int // indexed by PlayerID
	Plies    int
	Winner   core.PlayerID
	Over     bool
}

// Rules implements engine.Rules for checkers.
type Rules struct {
	ForcedCapture bool
}

var _ engine.Rules[State, Move] = Rules{}

// NewRules builds rules from configuration.
func NewRules(cfg config.CheckersConfig) Rules {
	return Rules{ForcedCapture: cfg.ForcedCapture}
}

// Init returns the starting position with Player1 to move.
func (r Rules) Init(core.RNG) State {
	return State{Board: NewBoard(), Turn: core.Player1}
}

// LegalMoves lists every move the side to move may play.
func (r Rules) LegalMoves(s State) []Move {
	if s.Over {
		return nil
	}
	if s.Chaining {
		return captures(s.Board, s.Chain)
	}

	var jumps, plain []Move
	s.Board.Each(func(p grid.Coord, piece Piece) {
		if piece.Owner() != s.Turn {
			return
		}
		jumps = append(jumps, captures(s.Board, p)...)
		plain = append(plain, steps(s.Board, p)...)
	})
	if r.ForcedCapture && len(jumps) > 0 {
		return jumps
	}
	return append(jumps, plain...)
}

// MovesFrom lists the legal moves of the piece on from.
func (r Rules) MovesFrom(s State, from grid.Coord) []Move {
	var out []Move
	for _, m := range r.LegalMoves(s) {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

// Apply plays m. An illegal move returns s unchanged with no events.
func (r Rules) Apply(s State, m Move, _ core.RNG) (State, core.Events) {
	if !slices.Contains(r.LegalMoves(s), m) {
		return s, nil
	}

	var events core.Events
	mover := s.Turn

	board := s.Board.Clone()
	piece := board.At(m.From)
	board.Put(m.From, Empty)

	if m.Capture() {
		board.Put(m.Jumped(), Empty)
		s.Captured[mover]++
		events.Add(core.EventCapture, int(mover), m.Jumped())
	}

	crowned := false
	if !piece.King() && m.To.Row == farRow(mover) {
		piece = piece.crowned()
		crowned = true
		events.Add(core.EventPromotion, int(mover), m.To)
	}
	board.Put(m.To, piece)

	s.Board = board
	s.Plies++

	// A capturing piece keeps the turn while it can jump again. Being
	// crowned ends the chain.
	if m.Capture() && !crowned && len(captures(board, m.To)) > 0 {
		s.Chaining = true
		s.Chain = m.To
		return s, events
	}

	s.Chaining = false
	s.Turn = mover.Other()
	events.Add(core.EventTurnPassed, int(s.Turn), grid.Coord{})

	if len(r.LegalMoves(s)) == 0 {
		s.Over = true
		s.Winner = mover
		events.Add(core.EventWin, int(mover), m.To)
	}
	return s, events
}

// Hash digests the board, the side to move and any open chain.
func (r Rules) Hash(s State) uint64 {
	h := s.Board.Hash()*31 + uint64(s.Turn)
	if s.Chaining {
		h = h*31 + uint64(s.Chain.Row*8+s.Chain.Col+1)
	}
	return h
}

// Count returns how many pieces the player has on the board.
func Count(b Board, player core.PlayerID) int {
	return b.Count(func(p Piece) bool { return p.Owner() == player })
}
