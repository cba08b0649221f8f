package tetris

import (
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// cellWall is what the arena reports outside its bounds, so the edges and
// the floor collide like locked blocks.
const cellWall Kind = 0xFF

// Arena is the well. Zero cells are empty, anything else is a locked block.
type Arena = *grid.Grid[Kind]

// NewArena returns an empty well.
func NewArena(width, height int) Arena {
	return grid.New(height, width, cellWall)
}

// State is one Tetris position.
type State struct {
	Arena  Arena
	Piece  Shape      // falling piece matrix in its current rotation
	Kind   Kind       // falling piece kind
	Pos    grid.Coord // arena cell under the matrix's top-left corner
	Next   Kind
	Score  int
	Lines  int
	Pieces int // pieces locked so far
	Over   bool
}

// Rules implements engine.Rules for Tetris.
type Rules struct {
	Width      int
	Height     int
	LinePoints int
}

var _ engine.Rules[State, core.Action] = Rules{}

// NewRules builds rules from configuration.
func NewRules(cfg config.TetrisConfig) Rules {
	r := Rules{
		Width:      cfg.Arena.Width,
		Height:     cfg.Arena.Height,
		LinePoints: cfg.Scoring.LinePoints,
	}
	if r.Width <= 0 {
		r.Width = 12
	}
	if r.Height <= 0 {
		r.Height = 20
	}
	if r.LinePoints <= 0 {
		r.LinePoints = 10
	}
	return r
}

// Init returns an empty well with the first piece in play.
func (r Rules) Init(rng core.RNG) State {
	s := State{
		Arena: NewArena(r.Width, r.Height),
		Next:  randomKind(rng),
	}
	s, _ = r.spawn(s, rng)
	return s
}

// Apply advances the game by one action.
// ActionNone is a gravity tick: the piece falls one row or locks.
func (r Rules) Apply(s State, a core.Action, rng core.RNG) (State, core.Events) {
	if s.Over {
		return s, nil
	}

	switch a {
	case core.ActionNone, core.ActionDown, core.ActionSoftDrop:
		return r.fall(s, rng)
	case core.ActionLeft:
		return shift(s, -1)
	case core.ActionRight:
		return shift(s, 1)
	case core.ActionUp, core.ActionRotateCW:
		return rotate(s, 1)
	case core.ActionRotateCCW:
		return rotate(s, -1)
	case core.ActionHardDrop:
		s.Pos.Row += DropDistance(s)
		return r.lock(s, rng)
	default:
		return s, nil
	}
}

// Hash digests the whole position including the falling piece.
func (r Rules) Hash(s State) uint64 {
	h := s.Arena.Hash()
	if s.Piece != nil {
		h = h*31 + s.Piece.Hash()
	}
	for _, v := range []int{int(s.Kind), s.Pos.Row, s.Pos.Col, int(s.Next), s.Score, s.Lines} {
		h = h*31 + uint64(v)
	}
	if s.Over {
		h = h*31 + 1
	}
	return h
}

func randomKind(rng core.RNG) Kind {
	return core.Pick(rng, spawnOrder[:])
}

// spawn puts the queued piece at the top of the well. It reports false when
// the new piece overlaps the stack, which ends the game.
func (r Rules) spawn(s State, rng core.RNG) (State, bool) {
	s.Kind = s.Next
	s.Next = randomKind(rng)
	s.Piece = NewShape(s.Kind)
	s.Pos = grid.At(0, r.Width/2-s.Piece.Cols()/2)
	return s, !collides(s.Arena, s.Piece, s.Pos)
}

// collides reports whether any solid cell of shape at pos overlaps a block
// or leaves the well.
func collides(arena Arena, shape Shape, pos grid.Coord) bool {
	rows, cols := shape.Dims()
	for y := range rows {
		for x := range cols {
			if shape.Get(y, x) == KindNone {
				continue
			}
			if arena.Get(pos.Row+y, pos.Col+x) != KindNone {
				return true
			}
		}
	}
	return false
}

// DropDistance is how many rows the falling piece can still descend.
func DropDistance(s State) int {
	if s.Piece == nil {
		return 0
	}
	n := 0
	for !collides(s.Arena, s.Piece, s.Pos.Add(n+1, 0)) {
		n++
	}
	return n
}

func (r Rules) fall(s State, rng core.RNG) (State, core.Events) {
	below := s.Pos.Add(1, 0)
	if !collides(s.Arena, s.Piece, below) {
		s.Pos = below
		return s, nil
	}
	return r.lock(s, rng)
}

func shift(s State, dc int) (State, core.Events) {
	to := s.Pos.Add(0, dc)
	if collides(s.Arena, s.Piece, to) {
		return s, nil
	}
	s.Pos = to
	return s, nil
}

// rotate turns the piece and, if it no longer fits, nudges it sideways by
// +1, -1, +2, -2 ... columns. When the nudge outgrows the piece the
// rotation is abandoned and the state is returned unchanged.
func rotate(s State, dir int) (State, core.Events) {
	shape := Rotate(s.Piece, dir)
	pos := s.Pos
	offset := 1
	for collides(s.Arena, shape, pos) {
		pos.Col += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if offset > shape.Cols() {
			return s, nil
		}
	}
	s.Piece = shape
	s.Pos = pos
	return s, nil
}

// lock merges the falling piece into a copy of the arena, clears full rows
// and brings in the next piece.
func (r Rules) lock(s State, rng core.RNG) (State, core.Events) {
	var events core.Events

	arena := s.Arena.Clone()
	s.Piece.Each(func(p grid.Coord, k Kind) {
		if k != KindNone {
			arena.Set(s.Pos.Row+p.Row, s.Pos.Col+p.Col, k)
		}
	})
	s.Arena = arena
	s.Pieces++
	events.Add(core.EventPieceLocked, int(s.Kind), s.Pos)

	if cleared := sweep(arena); cleared > 0 {
		points := r.LinePoints * (1<<cleared - 1)
		s.Lines += cleared
		s.Score += points
		events.Add(core.EventLinesCleared, cleared, grid.Coord{})
		events.Add(core.EventScore, points, grid.Coord{})
	}

	var ok bool
	s, ok = r.spawn(s, rng)
	if !ok {
		s.Over = true
		events.Add(core.EventLoss, 0, s.Pos)
	}
	return s, events
}

// sweep removes every full row in place, dropping the rows above it, and
// returns how many were removed.
func sweep(arena Arena) int {
	rows, cols := arena.Dims()
	write := rows - 1
	cleared := 0
	for read := rows - 1; read >= 0; read-- {
		row := arena.Row(read)
		if full(row) {
			cleared++
			continue
		}
		if write != read {
			arena.SetRow(write, row)
		}
		write--
	}
	empty := make([]Kind, cols)
	for ; write >= 0; write-- {
		arena.SetRow(write, empty)
	}
	return cleared
}

func full(row []Kind) bool {
	for _, k := range row {
		if k == KindNone {
			return false
		}
	}
	return true
}
