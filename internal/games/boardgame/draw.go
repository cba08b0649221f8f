package boardgame

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const (
	// SquareWidth is the number of screen columns per board square.
	SquareWidth = 3
	// Width and Height are the on-screen extent of a board with its rank
	// and file labels.
	Width  = Size*SquareWidth + 2
	Height = Size + 1
)

// Glyph is what a game wants drawn on one square.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Board draws the squares, labels and markers for an 8x8 game.
type Board struct {
	X, Y int // top-left corner on screen

	// Square returns the piece on p, or a zero Glyph for an empty square.
	Square func(p grid.Coord) Glyph
	// Dark reports whether p is a dark square.
	Dark func(p grid.Coord) bool
}

// Draw renders the board with the cursor, the selected square and the
// legal targets of the selected piece.
func (b Board) Draw(dst *core.Screen, cur Cursor, targets []grid.Coord) {
	for row := range Size {
		y := b.Y + row
		dst.DrawText(b.X, y, string(rune('8'-row)))
		for col := range Size {
			p := grid.At(row, col)
			x := b.X + 2 + col*SquareWidth

			if b.Dark(p) {
				dst.DrawTextColor(x, y, "░░░", core.ColorGray)
			}

			if g := b.Square(p); g.Rune != 0 {
				dst.SetColor(x+1, y, g.Rune, g.Color)
			}

			switch {
			case cur.Holding(p):
				dst.SetColor(x, y, '<', core.ColorBrightGreen)
				dst.SetColor(x+2, y, '>', core.ColorBrightGreen)
			case p == cur.Pos:
				dst.SetColor(x, y, '[', core.ColorBrightYellow)
				dst.SetColor(x+2, y, ']', core.ColorBrightYellow)
			}
		}
	}

	for _, t := range targets {
		if b.Square(t).Rune == 0 {
			dst.SetColor(b.X+2+t.Col*SquareWidth+1, b.Y+t.Row, '•', core.ColorBrightGreen)
		}
	}
	for col := range Size {
		dst.DrawText(b.X+3+col*SquareWidth, b.Y+Size, string(rune('a'+col)))
	}
}
