package chess

import (
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Ending says how a finished game ended.
type Ending int

const (
	NotOver Ending = iota
	Checkmate
	Stalemate
	Repetition
)

func (e Ending) String() string {
	switch e {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Repetition:
		return "repetition"
	default:
		return "in progress"
	}
}

// State is one chess position plus the game history needed to judge it.
type State struct {
	Board    Board
	Turn     core.PlayerID
	Plies    int
	History  []uint64 // position keys after every ply, starting position first
	Material [3]int   // captured material by PlayerID
	Winner   core.PlayerID
	Ending   Ending
}

// Over reports whether the game has finished.
func (s State) Over() bool { return s.Ending != NotOver }

// Rules implements engine.Rules for chess.
type Rules struct {
	// RepetitionLimit draws the game when a position occurs this many
	// times. Zero disables the rule.
	RepetitionLimit int
}

var _ engine.Rules[State, Move] = Rules{}

// NewRules builds rules from configuration.
func NewRules(cfg config.ChessConfig) Rules {
	return Rules{RepetitionLimit: cfg.RepetitionLimit}
}

// Init returns the standard starting position with White to move.
func (r Rules) Init(core.RNG) State {
	s := State{Board: NewBoard(), Turn: White}
	s.History = []uint64{positionKey(s.Board, s.Turn)}
	return s
}

// LegalMoves lists every move the side to move may play.
func (r Rules) LegalMoves(s State) []Move {
	if s.Over() {
		return nil
	}
	var out []Move
	s.Board.Each(func(p grid.Coord, piece Piece) {
		if piece.Side() == s.Turn {
			out = append(out, legalFrom(s.Board, p)...)
		}
	})
	return out
}

// MovesFrom lists the legal moves of the piece on from.
func (r Rules) MovesFrom(s State, from grid.Coord) []Move {
	if s.Over() || s.Board.At(from).Side() != s.Turn {
		return nil
	}
	return legalFrom(s.Board, from)
}

// legalFrom filters the piece's moves down to those that keep its own
// king out of check.
func legalFrom(b Board, from grid.Coord) []Move {
	side := b.At(from).Side()
	moves := pseudoMoves(b, from)
	return slices.DeleteFunc(moves, func(m Move) bool {
		next, _, _ := play(b, m)
		return InCheck(next, side)
	})
}

// Apply plays m. An illegal move returns s unchanged with no events.
func (r Rules) Apply(s State, m Move, _ core.RNG) (State, core.Events) {
	if !slices.Contains(r.MovesFrom(s, m.From), m) {
		return s, nil
	}

	var events core.Events
	mover := s.Turn

	board, captured, promoted := play(s.Board, m)
	if captured != Empty {
		s.Material[mover] += captured.Kind().Value()
		events.Add(core.EventCapture, int(mover), m.To)
	}
	if promoted {
		events.Add(core.EventPromotion, int(mover), m.To)
	}

	s.Board = board
	s.Turn = mover.Other()
	s.Plies++
	key := positionKey(board, s.Turn)
	s.History = append(slices.Clip(s.History), key)
	events.Add(core.EventTurnPassed, int(s.Turn), grid.Coord{})

	check := InCheck(board, s.Turn)
	stuck := len(r.LegalMoves(s)) == 0
	switch {
	case stuck && check:
		s.Ending = Checkmate
		s.Winner = mover
		events.Add(core.EventWin, int(mover), m.To)
	case stuck:
		s.Ending = Stalemate
		events.Add(core.EventDraw, 0, m.To)
	case r.RepetitionLimit > 0 && s.Repeats() >= r.RepetitionLimit:
		s.Ending = Repetition
		events.Add(core.EventDraw, 0, m.To)
	case check:
		events.Add(core.EventCheck, int(s.Turn), m.To)
	}
	return s, events
}

// Hash digests the board and the side to move.
func (r Rules) Hash(s State) uint64 {
	return positionKey(s.Board, s.Turn)
}

func positionKey(b Board, turn core.PlayerID) uint64 {
	return b.Hash()*31 + uint64(turn)
}

// repetitionTable counts how often each position key occurs.
func repetitionTable(history []uint64) *intmap.Map[uint64, int] {
	t := intmap.New[uint64, int](len(history))
	for _, h := range history {
		n, _ := t.Get(h)
		t.Put(h, n+1)
	}
	return t
}

// Repeats returns how many times the current position has occurred.
func (s State) Repeats() int {
	if len(s.History) == 0 {
		return 0
	}
	n, _ := repetitionTable(s.History).Get(s.History[len(s.History)-1])
	return n
}
