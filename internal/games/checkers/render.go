package checkers

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/boardgame"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const hudHeight = 2

var pieceGlyphs = map[Piece]boardgame.Glyph{
	Man1:  {Rune: 'o', Color: core.ColorBrightBlue},
	King1: {Rune: 'K', Color: core.ColorBrightBlue},
	Man2:  {Rune: 'o', Color: core.ColorBrightRed},
	King2: {Rune: 'K', Color: core.ColorBrightRed},
}

var sideNames = map[core.PlayerID]string{
	core.Player1: "Blue",
	core.Player2: "Red",
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	s := g.session.State()
	status := fmt.Sprintf("%s to move", sideNames[s.Turn])
	if s.Chaining {
		status = fmt.Sprintf("%s must keep jumping", sideNames[s.Turn])
	}
	dst.DrawText(0, 0, fmt.Sprintf(" Checkers | %s | Captured  Blue: %d  Red: %d",
		status, s.Captured[core.Player1], s.Captured[core.Player2]))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	board := boardgame.Board{
		X: (g.screenW - boardgame.Width) / 2,
		Y: hudHeight + 1,
		Square: func(p grid.Coord) boardgame.Glyph {
			return pieceGlyphs[s.Board.At(p)]
		},
		Dark: Dark,
	}
	board.Draw(dst, g.cursor, g.targets())

	if g.lastMove != nil {
		dst.DrawText(board.X, board.Y+boardgame.Height+1, "Last: "+g.lastMove.String())
	}

	if s.Over {
		dst.DrawOverlay(fmt.Sprintf("%s wins!", sideNames[s.Winner]),
			fmt.Sprintf("%s has no moves left", sideNames[s.Winner.Other()]),
			"Press R to play again")
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move cursor | Space/Enter: Pick/Place | Backspace: Drop | Q: Quit"
}
