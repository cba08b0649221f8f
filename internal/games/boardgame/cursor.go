// Package boardgame holds the cursor and drawing helpers shared by the
// 8x8 turn-based games.
package boardgame

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Size is the side length of both boards.
const Size = 8

// Cursor is the square the player is pointing at plus an optional picked
// up piece.
type Cursor struct {
	Pos      grid.Coord
	Selected grid.Coord
	Picked   bool
}

// NewCursor returns a cursor resting on start with nothing selected.
func NewCursor(start grid.Coord) Cursor {
	return Cursor{Pos: start}
}

// Move shifts the cursor one square for a directional action, staying on
// the board. It reports whether the action was directional.
func (c *Cursor) Move(a core.Action) bool {
	d, ok := a.Dir()
	if !ok {
		return false
	}
	next := c.Pos.Step(d)
	if next.Row >= 0 && next.Row < Size && next.Col >= 0 && next.Col < Size {
		c.Pos = next
	}
	return true
}

// Pick selects the square under the cursor.
func (c *Cursor) Pick() {
	c.Selected = c.Pos
	c.Picked = true
}

// Drop clears the selection.
func (c *Cursor) Drop() {
	c.Picked = false
}

// Holding reports whether p is the selected square.
func (c Cursor) Holding(p grid.Coord) bool {
	return c.Picked && c.Selected == p
}

// SquareName returns the algebraic name of a square, with row 0 as rank 8.
func SquareName(p grid.Coord) string {
	if p.Row < 0 || p.Row >= Size || p.Col < 0 || p.Col >= Size {
		return "??"
	}
	return string([]byte{byte('a' + p.Col), byte('8' - p.Row)})
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(name string) (grid.Coord, bool) {
	if len(name) != 2 {
		return grid.Coord{}, false
	}
	col, row := int(name[0]-'a'), int('8'-name[1])
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return grid.Coord{}, false
	}
	return grid.At(row, col), true
}
