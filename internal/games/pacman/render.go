package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const (
	hudHeight = 2
	cellWidth = 2
)

var ghostColors = []core.Color{core.ColorRed, core.ColorCyan, core.ColorBrightMagenta, core.ColorOrange}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	s := g.session.State()
	dst.DrawText(0, 0, fmt.Sprintf(" Pac-Man | Score: %d  Dots: %d  Lives: %s",
		s.Score, s.DotsLeft, strings.Repeat("C ", max(s.Lives, 0))))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	s.Cells.Each(func(p grid.Coord, c Cell) {
		x, y := g.cellPos(p)
		switch c {
		case CellWall:
			dst.SetColor(x, y, '█', core.ColorBlue)
			dst.SetColor(x+1, y, '█', core.ColorBlue)
		case CellDot:
			dst.SetColor(x, y, '·', core.ColorWhite)
		}
	})

	x, y := g.cellPos(s.Pac)
	dst.SetColor(x, y, pacRune(s.Dir), core.ColorBrightYellow)

	for i, gh := range s.Ghosts {
		x, y := g.cellPos(gh.Pos)
		dst.SetColor(x, y, 'M', ghostColors[i%len(ghostColors)])
	}

	switch {
	case s.Won:
		dst.DrawOverlay("You Win!", fmt.Sprintf("Final Score: %d", s.Score))
	case s.Lost:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", s.Score), "Press R to restart")
	case g.lifeLostTick > 0:
		dst.DrawOverlay("Caught!", fmt.Sprintf("Lives left: %d", s.Lives))
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

func (g *Game) cellPos(p grid.Coord) (x, y int) {
	return g.originX + p.Col*cellWidth, g.originY + p.Row
}

// pacRune faces the mouth along the heading.
func pacRune(d grid.Dir) rune {
	switch d {
	case grid.DirLeft:
		return 'Ɔ'
	case grid.DirUp:
		return 'U'
	case grid.DirDown:
		return 'n'
	default:
		return 'C'
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Steer | P: Pause | R: Restart | Q: Quit"
}
