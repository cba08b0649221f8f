// Package checkers implements hot-seat draughts on an 8x8 board with
// capture chains and mandatory capture.
package checkers

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/boardgame"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Piece is the content of one square.
type Piece uint8

const (
	Empty Piece = iota
	Man1
	Man2
	King1
	King2

	offBoard Piece = 0xFF
)

// Owner returns the player the piece belongs to.
func (p Piece) Owner() core.PlayerID {
	switch p {
	case Man1, King1:
		return core.Player1
	case Man2, King2:
		return core.Player2
	default:
		return core.NoPlayer
	}
}

// King reports whether the piece is crowned.
func (p Piece) King() bool {
	return p == King1 || p == King2
}

func (p Piece) crowned() Piece {
	switch p {
	case Man1:
		return King1
	case Man2:
		return King2
	default:
		return p
	}
}

// Board is the 8x8 playing surface. Off-board reads return offBoard.
type Board = *grid.Grid[Piece]

// NewBoard returns the starting position: Player2 on rows 0-2, Player1 on
// rows 5-7, dark squares only.
func NewBoard() Board {
	b := grid.New(boardgame.Size, boardgame.Size, offBoard)
	for row := range boardgame.Size {
		for col := range boardgame.Size {
			if !Dark(grid.At(row, col)) {
				continue
			}
			switch {
			case row < 3:
				b.Set(row, col, Man2)
			case row > 4:
				b.Set(row, col, Man1)
			}
		}
	}
	return b
}

// Dark reports whether p is a playable square.
func Dark(p grid.Coord) bool {
	return (p.Row+p.Col)%2 == 1
}

// Move takes a piece from one square to another. A move of two rows is a
// capture of the piece jumped over.
type Move struct {
	From grid.Coord `yaml:"from"`
	To   grid.Coord `yaml:"to"`
}

// Capture reports whether the move jumps a piece.
func (m Move) Capture() bool {
	return m.To.Row-m.From.Row == 2 || m.From.Row-m.To.Row == 2
}

// Jumped returns the square between From and To of a capture.
func (m Move) Jumped() grid.Coord {
	return grid.At((m.From.Row+m.To.Row)/2, (m.From.Col+m.To.Col)/2)
}

func (m Move) String() string {
	sep := "-"
	if m.Capture() {
		sep = "x"
	}
	return fmt.Sprintf("%s%s%s", boardgame.SquareName(m.From), sep, boardgame.SquareName(m.To))
}

// directions lists the diagonals a piece may travel.
func directions(p Piece) [][2]int {
	switch {
	case p.King():
		return [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	case p.Owner() == core.Player1:
		return [][2]int{{-1, -1}, {-1, 1}}
	default:
		return [][2]int{{1, -1}, {1, 1}}
	}
}

// farRow is where a man of the given side is crowned.
func farRow(player core.PlayerID) int {
	if player == core.Player1 {
		return 0
	}
	return boardgame.Size - 1
}

// captures lists the jumps available to the piece on from.
func captures(b Board, from grid.Coord) []Move {
	piece := b.At(from)
	var out []Move
	for _, d := range directions(piece) {
		mid := from.Add(d[0], d[1])
		to := from.Add(2*d[0], 2*d[1])
		victim := b.At(mid)
		if victim == Empty || victim == offBoard || victim.Owner() == piece.Owner() {
			continue
		}
		if b.At(to) == Empty {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}

// steps lists the plain moves available to the piece on from.
func steps(b Board, from grid.Coord) []Move {
	var out []Move
	for _, d := range directions(b.At(from)) {
		to := from.Add(d[0], d[1])
		if b.At(to) == Empty {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}
