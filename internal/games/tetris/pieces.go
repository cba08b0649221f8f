// Package tetris implements falling-block Tetris on a 12x20 well.
package tetris

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Kind identifies a tetromino. The value doubles as the cell color index
// once the piece is locked into the arena.
type Kind uint8

const (
	KindNone Kind = iota
	KindT
	KindO
	KindL
	KindJ
	KindI
	KindS
	KindZ
)

// spawnOrder is the alphabet pieces are drawn from.
var spawnOrder = [...]Kind{KindT, KindJ, KindL, KindO, KindS, KindZ, KindI}

var kindNames = [...]string{
	KindNone: "-",
	KindT:    "T",
	KindO:    "O",
	KindL:    "L",
	KindJ:    "J",
	KindI:    "I",
	KindS:    "S",
	KindZ:    "Z",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Color returns the display color of a locked cell.
func (k Kind) Color() core.Color {
	switch k {
	case KindT:
		return core.ColorMagenta
	case KindO:
		return core.ColorBrightCyan
	case KindL:
		return core.ColorBrightGreen
	case KindJ:
		return core.ColorBrightMagenta
	case KindI:
		return core.ColorOrange
	case KindS:
		return core.ColorYellow
	case KindZ:
		return core.ColorBlue
	default:
		return core.ColorDefault
	}
}

// Shape is a square piece matrix. Zero cells are transparent.
type Shape = *grid.Grid[Kind]

// NewShape returns the spawn matrix of a piece.
func NewShape(k Kind) Shape {
	var rows [][]Kind
	switch k {
	case KindT:
		rows = [][]Kind{
			{0, 0, 0},
			{k, k, k},
			{0, k, 0},
		}
	case KindO:
		rows = [][]Kind{
			{k, k},
			{k, k},
		}
	case KindL:
		rows = [][]Kind{
			{0, k, 0},
			{0, k, 0},
			{0, k, k},
		}
	case KindJ:
		rows = [][]Kind{
			{0, k, 0},
			{0, k, 0},
			{k, k, 0},
		}
	case KindI:
		rows = [][]Kind{
			{0, k, 0, 0},
			{0, k, 0, 0},
			{0, k, 0, 0},
			{0, k, 0, 0},
		}
	case KindS:
		rows = [][]Kind{
			{0, k, k},
			{k, k, 0},
			{0, 0, 0},
		}
	case KindZ:
		rows = [][]Kind{
			{k, k, 0},
			{0, k, k},
			{0, 0, 0},
		}
	default:
		rows = [][]Kind{{0}}
	}
	return grid.FromRows(rows, KindNone)
}

// Rotate returns the shape turned a quarter clockwise (dir > 0) or
// counter-clockwise (dir < 0). The input is left alone.
func Rotate(shape Shape, dir int) Shape {
	size := shape.Rows()
	out := grid.New(size, size, KindNone)
	for r := range size {
		for c := range size {
			if dir > 0 {
				out.Set(c, size-1-r, shape.Get(r, c))
			} else {
				out.Set(size-1-c, r, shape.Get(r, c))
			}
		}
	}
	return out
}
