package snake

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	s := g.session.State()

	// Draw HUD
	g.renderHUD(dst, s)

	// Handle special states
	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	g.renderMap(dst, s)
	g.renderSnake(dst, s)
	g.renderFood(dst, s)

	// Draw overlays
	switch {
	case g.levelClearTicks > 0:
		// s.Level already points at the next map.
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", s.Level), "Next: "+g.rules.LevelAt(s).Name)
	case s.Won:
		dst.DrawOverlay("You Win!", fmt.Sprintf("Final Score: %d", s.Score))
	case s.Dead:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", s.Score), "Press R to restart")
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, s State) {
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Snake (Endless) | Score: %d  Length: %d  Speed: %d",
			s.Score, len(s.Body), 10-g.moveEveryTicks())
	} else {
		target := g.rules.LevelAt(s).TargetFood
		hud = fmt.Sprintf(" Snake | Score: %d  Level: %d/%d  Food: %d/%d",
			s.Score, s.Level+1, len(g.rules.Levels), s.FoodEaten, target)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderMap draws the border and the level's walls.
func (g *Game) renderMap(dst *core.Screen, s State) {
	rows, cols := s.Board.Dims()
	dst.DrawBox(core.NewRect(g.mapOffsetX-1, g.mapOffsetY-1, cols+2, rows+2))

	s.Board.Each(func(p grid.Coord, c Cell) {
		if c == CellWall {
			dst.SetColor(g.mapOffsetX+p.Col, g.mapOffsetY+p.Row, '#', core.ColorBlue)
		}
	})
}

// renderSnake draws the snake.
func (g *Game) renderSnake(dst *core.Screen, s State) {
	for i, seg := range s.Body {
		x := g.mapOffsetX + seg.Col
		y := g.mapOffsetY + seg.Row
		if i == 0 {
			dst.SetColor(x, y, 'O', core.ColorBrightGreen) // Head
		} else {
			dst.SetColor(x, y, 'o', core.ColorGreen) // Body
		}
	}
}

// renderFood draws the current food item.
func (g *Game) renderFood(dst *core.Screen, s State) {
	if !s.HasFood {
		return
	}
	r, c := '*', core.ColorRed
	switch s.FoodKind {
	case FoodBonus:
		r, c = '$', core.ColorYellow
	case FoodSuper:
		r, c = '@', core.ColorBrightMagenta
	}
	dst.SetColor(g.mapOffsetX+s.Food.Col, g.mapOffsetY+s.Food.Row, r, c)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Turn | P: Pause | R: Restart | Q: Quit"
}
