package chess

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/boardgame"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

const hudHeight = 2

var kindLetters = [...]rune{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

var sideNames = map[core.PlayerID]string{
	White: "White",
	Black: "Black",
}

// glyph draws White in upper case and Black in lower case.
func glyph(p Piece) boardgame.Glyph {
	k := p.Kind()
	if k == NoKind {
		return boardgame.Glyph{}
	}
	if p.Side() == White {
		return boardgame.Glyph{Rune: kindLetters[k], Color: core.ColorBrightWhite}
	}
	return boardgame.Glyph{Rune: kindLetters[k] + ('a' - 'A'), Color: core.ColorBrightYellow}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	s := g.session.State()
	status := sideNames[s.Turn] + " to move"
	if g.check {
		status += " (check)"
	}
	dst.DrawText(0, 0, fmt.Sprintf(" Chess | %s | Material  White: %d  Black: %d",
		status, s.Material[White], s.Material[Black]))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	board := boardgame.Board{
		X: (g.screenW - boardgame.Width) / 2,
		Y: hudHeight + 1,
		Square: func(p grid.Coord) boardgame.Glyph {
			return glyph(s.Board.At(p))
		},
		Dark: func(p grid.Coord) bool { return (p.Row+p.Col)%2 == 1 },
	}
	board.Draw(dst, g.cursor, g.targets())

	if g.lastMove != nil {
		info := "Last: " + g.lastMove.String()
		if n := s.Repeats(); n > 1 {
			info += fmt.Sprintf("  (position seen %d times)", n)
		}
		dst.DrawText(board.X, board.Y+boardgame.Height+1, info)
	}

	switch s.Ending {
	case Checkmate:
		dst.DrawOverlay("Checkmate!", sideNames[s.Winner]+" wins", "Press R to play again")
	case Stalemate:
		dst.DrawOverlay("Stalemate", "The game is drawn", "Press R to play again")
	case Repetition:
		dst.DrawOverlay("Draw by repetition", "Press R to play again")
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move cursor | Space/Enter: Pick/Place | Backspace: Drop | Q: Quit"
}
