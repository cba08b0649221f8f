// Package chess implements hot-seat chess with full legal move checking.
// Castling and en passant are not played; pawns always promote to a queen.
package chess

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/boardgame"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Kind is a piece type.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Value is the material worth of a piece kind.
func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

// Piece packs a kind and a side into one cell value.
type Piece uint8

const (
	Empty     Piece = 0
	blackFlag Piece = 0x08
	offBoard  Piece = 0xFF
)

// White and Black name the two sides.
const (
	White = core.Player1
	Black = core.Player2
)

// NewPiece returns a piece of the given side and kind.
func NewPiece(side core.PlayerID, k Kind) Piece {
	p := Piece(k)
	if side == Black {
		p |= blackFlag
	}
	return p
}

// Kind returns the piece type.
func (p Piece) Kind() Kind {
	if p == offBoard {
		return NoKind
	}
	return Kind(p &^ blackFlag)
}

// Side returns the owner, or NoPlayer for empty and off-board squares.
func (p Piece) Side() core.PlayerID {
	switch {
	case p == Empty, p == offBoard:
		return core.NoPlayer
	case p&blackFlag != 0:
		return Black
	default:
		return White
	}
}

// Board is the 8x8 playing surface. Off-board reads return offBoard.
type Board = *grid.Grid[Piece]

var backRank = [boardgame.Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position. Black is on rows 0-1,
// White on rows 6-7.
func NewBoard() Board {
	b := grid.New(boardgame.Size, boardgame.Size, offBoard)
	for col, k := range backRank {
		b.Set(0, col, NewPiece(Black, k))
		b.Set(1, col, NewPiece(Black, Pawn))
		b.Set(6, col, NewPiece(White, Pawn))
		b.Set(7, col, NewPiece(White, k))
	}
	return b
}

// Move takes a piece from one square to another.
type Move struct {
	From grid.Coord `yaml:"from"`
	To   grid.Coord `yaml:"to"`
}

func (m Move) String() string {
	return boardgame.SquareName(m.From) + "-" + boardgame.SquareName(m.To)
}

var (
	knightJumps = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	straight    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allWays     = append(append([][2]int{}, straight...), diagonal...)
)

// forward is the row step of a pawn of the given side.
func forward(side core.PlayerID) int {
	if side == White {
		return -1
	}
	return 1
}

// pawnRow is where pawns of the given side start.
func pawnRow(side core.PlayerID) int {
	if side == White {
		return 6
	}
	return 1
}

// lastRow is where pawns of the given side promote.
func lastRow(side core.PlayerID) int {
	if side == White {
		return 0
	}
	return boardgame.Size - 1
}

// pseudoMoves lists the moves of the piece on from, ignoring whether they
// leave the mover's own king in check.
func pseudoMoves(b Board, from grid.Coord) []Move {
	piece := b.At(from)
	side := piece.Side()
	var out []Move
	add := func(to grid.Coord) { out = append(out, Move{From: from, To: to}) }

	switch piece.Kind() {
	case Pawn:
		dr := forward(side)
		one := from.Add(dr, 0)
		if b.At(one) == Empty {
			add(one)
			two := from.Add(2*dr, 0)
			if from.Row == pawnRow(side) && b.At(two) == Empty {
				add(two)
			}
		}
		for _, dc := range []int{-1, 1} {
			to := from.Add(dr, dc)
			if enemy(b.At(to), side) {
				add(to)
			}
		}
	case Knight:
		for _, d := range knightJumps {
			if to := from.Add(d[0], d[1]); reachable(b.At(to), side) {
				add(to)
			}
		}
	case King:
		for _, d := range allWays {
			if to := from.Add(d[0], d[1]); reachable(b.At(to), side) {
				add(to)
			}
		}
	case Bishop:
		slide(b, from, side, diagonal, add)
	case Rook:
		slide(b, from, side, straight, add)
	case Queen:
		slide(b, from, side, allWays, add)
	}
	return out
}

// slide walks each direction until the edge or a piece, including the
// first enemy piece met.
func slide(b Board, from grid.Coord, side core.PlayerID, dirs [][2]int, add func(grid.Coord)) {
	for _, d := range dirs {
		to := from.Add(d[0], d[1])
		for {
			p := b.At(to)
			if p == offBoard || p.Side() == side {
				break
			}
			add(to)
			if p != Empty {
				break
			}
			to = to.Add(d[0], d[1])
		}
	}
}

func enemy(p Piece, side core.PlayerID) bool {
	s := p.Side()
	return s != core.NoPlayer && s != side
}

func reachable(p Piece, side core.PlayerID) bool {
	return p == Empty || enemy(p, side)
}

// attacked reports whether any piece of side by attacks sq.
func attacked(b Board, sq grid.Coord, by core.PlayerID) bool {
	// Pawns attack diagonally forward only.
	for _, dc := range []int{-1, 1} {
		if b.At(sq.Add(-forward(by), dc)) == NewPiece(by, Pawn) {
			return true
		}
	}
	for _, d := range knightJumps {
		if b.At(sq.Add(d[0], d[1])) == NewPiece(by, Knight) {
			return true
		}
	}
	for _, d := range allWays {
		if b.At(sq.Add(d[0], d[1])) == NewPiece(by, King) {
			return true
		}
	}
	return rayHits(b, sq, straight, NewPiece(by, Rook), NewPiece(by, Queen)) ||
		rayHits(b, sq, diagonal, NewPiece(by, Bishop), NewPiece(by, Queen))
}

// rayHits reports whether the first piece along any of dirs is one of
// sliders.
func rayHits(b Board, sq grid.Coord, dirs [][2]int, sliders ...Piece) bool {
	for _, d := range dirs {
		to := sq.Add(d[0], d[1])
		for b.At(to) == Empty {
			to = to.Add(d[0], d[1])
		}
		for _, s := range sliders {
			if b.At(to) == s {
				return true
			}
		}
	}
	return false
}

// kingSquare finds the king of side. ok is false when it is missing.
func kingSquare(b Board, side core.PlayerID) (grid.Coord, bool) {
	king := NewPiece(side, King)
	found := b.Find(func(p Piece) bool { return p == king })
	if len(found) == 0 {
		return grid.Coord{}, false
	}
	return found[0], true
}

// InCheck reports whether side's king is attacked.
func InCheck(b Board, side core.PlayerID) bool {
	sq, ok := kingSquare(b, side)
	return ok && attacked(b, sq, side.Other())
}

// play returns a copy of b with m made, promoting pawns to queens.
func play(b Board, m Move) (next Board, captured Piece, promoted bool) {
	next = b.Clone()
	piece := next.At(m.From)
	captured = next.At(m.To)
	if piece.Kind() == Pawn && m.To.Row == lastRow(piece.Side()) {
		piece = NewPiece(piece.Side(), Queen)
		promoted = true
	}
	next.Put(m.From, Empty)
	next.Put(m.To, piece)
	return next, captured, promoted
}
