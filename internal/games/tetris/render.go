package tetris

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const (
	hudHeight  = 1
	cellWidth  = 2  // each well cell is two columns wide so blocks look square
	panelWidth = 14 // side panel with the next piece and counters
)

// layoutSize returns the screen area the well and side panel need.
func layoutSize(r Rules) (w, h int) {
	return r.Width*cellWidth + 2 + panelWidth, r.Height + 2 + hudHeight
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	s := g.session.State()
	dst.DrawTextCentered(0, "TETRIS")

	wellW := g.rules.Width*cellWidth + 2
	dst.DrawBox(core.NewRect(g.originX, g.originY, wellW, g.rules.Height+2))

	// Locked blocks
	s.Arena.Each(func(p grid.Coord, k Kind) {
		if k != KindNone {
			g.drawBlock(dst, p, '█', k.Color())
		}
	})

	if !s.Over {
		// Landing shadow first so the piece draws over it
		drop := DropDistance(s)
		if drop > 0 {
			g.drawShape(dst, s.Piece, s.Pos.Add(drop, 0), '░', core.ColorGray)
		}
		g.drawShape(dst, s.Piece, s.Pos, '█', s.Kind.Color())
	}

	g.renderPanel(dst, s, g.originX+wellW+2)

	switch {
	case s.Over:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d  Lines: %d", s.Score, s.Lines), "Press R to restart")
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

// drawBlock paints one well cell.
func (g *Game) drawBlock(dst *core.Screen, p grid.Coord, r rune, c core.Color) {
	x := g.originX + 1 + p.Col*cellWidth
	y := g.originY + 1 + p.Row
	for i := range cellWidth {
		dst.SetColor(x+i, y, r, c)
	}
}

// drawShape paints the solid cells of a piece matrix placed at pos.
func (g *Game) drawShape(dst *core.Screen, shape Shape, pos grid.Coord, r rune, c core.Color) {
	shape.Each(func(p grid.Coord, k Kind) {
		if k == KindNone {
			return
		}
		at := grid.At(pos.Row+p.Row, pos.Col+p.Col)
		if at.Row < 0 || at.Row >= g.rules.Height || at.Col < 0 || at.Col >= g.rules.Width {
			return
		}
		g.drawBlock(dst, at, r, c)
	})
}

// renderPanel draws the next piece preview and the counters.
func (g *Game) renderPanel(dst *core.Screen, s State, x int) {
	y := g.originY
	dst.DrawText(x, y, "Next:")
	NewShape(s.Next).Each(func(p grid.Coord, k Kind) {
		if k != KindNone {
			for i := range cellWidth {
				dst.SetColor(x+p.Col*cellWidth+i, y+1+p.Row, '█', k.Color())
			}
		}
	})

	y += 6
	dst.DrawText(x, y, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawText(x, y+1, fmt.Sprintf("Lines: %d", s.Lines))
	dst.DrawText(x, y+2, fmt.Sprintf("Speed: %d", 61-g.dropEveryTicks()))
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Move | ↑/X: Rotate | Z: Rotate back | ↓: Drop | Space: Hard drop | P: Pause | Q: Quit"
}
