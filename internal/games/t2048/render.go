package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const (
	cellWidth  = 6 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
)

// boardExtent returns the on-screen size of a size x size board.
func boardExtent(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColor picks a color per tile value, cycling for huge tiles.
func tileColor(v int) core.Color {
	palette := []core.Color{
		core.ColorWhite,         // 2
		core.ColorBrightWhite,   // 4
		core.ColorYellow,        // 8
		core.ColorOrange,        // 16
		core.ColorRed,           // 32
		core.ColorBrightRed,     // 64
		core.ColorBrightYellow,  // 128
		core.ColorGreen,         // 256
		core.ColorBrightGreen,   // 512
		core.ColorCyan,          // 1024
		core.ColorBrightCyan,    // 2048
		core.ColorBlue,          // 4096
		core.ColorBrightMagenta, // 8192+
	}
	idx := 0
	for v > 2 {
		v >>= 1
		idx++
	}
	return palette[min(idx, len(palette)-1)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	s := g.session.State()
	boardW, _ := boardExtent(s.Board.Rows())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, s, boardX, boardW)
	g.renderBoard(dst, s.Board, boardX, boardY)
	g.renderOverlays(dst, s)
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, s State, boardX, boardW int) {
	title := "2048"
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))

	// Level/Target info (campaign) or Max tile (endless)
	var infoStr string
	if g.mode == ModeCampaign {
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", s.Level+1, len(g.rules.Levels), s.Target)
	} else {
		infoStr = fmt.Sprintf("Max: %d", MaxTile(s.Board))
	}
	dst.DrawText(max(boardX, boardX+boardW-len(infoStr)), 1, infoStr)

	modeStr := "Campaign"
	if g.mode == ModeEndless {
		modeStr = "Endless"
	}
	dst.DrawText(boardX+(boardW-len(modeStr))/2, 2, modeStr)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, board Board, boardX, boardY int) {
	size := board.Rows()

	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.Set(px, py, junction(x, y, size))

			if x < size {
				dst.DrawHLine(px+1, py, cellWidth-1, '─')
			}
			if y < size {
				dst.DrawVLine(px, py+1, cellHeight-1, '│')
			}
		}
	}

	board.Each(func(p grid.Coord, val int) {
		if val == 0 {
			return
		}
		cellX := boardX + p.Col*cellWidth + 1
		cellY := boardY + p.Row*cellHeight + 1

		valStr := strconv.Itoa(val)
		padLeft := max(0, (cellWidth-1-len(valStr))/2)

		color := tileColor(val)
		if g.flashing(p) {
			color = core.ColorBrightMagenta
		}
		dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
	})
}

// junction picks the box-drawing rune for a grid line crossing.
func junction(x, y, size int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == size:
		return '┐'
	case y == size && x == 0:
		return '└'
	case y == size && x == size:
		return '┘'
	case y == 0:
		return '┬'
	case y == size:
		return '┴'
	case x == 0:
		return '├'
	case x == size:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, s State) {
	switch {
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press P to resume")
	case g.levelClearTicks > 0:
		// s.Level already points at the next level.
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", s.Level), fmt.Sprintf("Next target: %d", s.Target))
	case s.Won:
		dst.DrawOverlay("CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
	case s.Lost:
		dst.DrawOverlay("GAME OVER", fmt.Sprintf("Max tile: %d", MaxTile(s.Board)), "Press R to restart")
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Move | P: Pause | R: Restart | Q: Quit"
}
