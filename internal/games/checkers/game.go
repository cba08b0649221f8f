package checkers

import (
	"context"
	"slices"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/games/boardgame"
	"github.com/vovakirdan/grid-arcade/internal/grid"
	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Game adapts the checkers rules to the platform: a cursor picks a piece,
// then a destination. Both sides play from the same keyboard.
type Game struct {
	cfg     config.CheckersConfig
	rules   Rules
	session *engine.Session[State, Move]
	cursor  boardgame.Cursor

	screenW  int
	screenH  int
	tooSmall bool
	lastMove *Move
}

// New creates a new checkers game.
func New() *Game {
	return &Game{}
}

var (
	_ registry.Replayable   = (*Game)(nil)
	_ multiplayer.BoardGame = (*Game)(nil)
)

func init() {
	registry.Register("checkers", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "checkers" }

// Title returns the display name.
func (g *Game) Title() string { return "Checkers" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig(cfg.ConfigPath)
	g.rules = NewRules(g.cfg)
	g.session = engine.NewSession[State, Move](g.rules, cfg.Seed)
	g.cursor = boardgame.NewCursor(grid.At(5, 0))
	g.lastMove = nil

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < boardgame.Width || g.screenH < boardgame.Height+hudHeight+3
}

// loadConfig reads the checkers configuration, falling back to the
// built-in defaults when a custom file cannot be used.
func (g *Game) loadConfig(path string) {
	cfg, err := config.LoadCheckers(path)
	if err != nil {
		cfg, _ = config.LoadCheckers("")
	}
	g.cfg = cfg
}

// Step handles one tick of input. Nothing happens without input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall || g.session.Over() {
		return core.StepResult{State: g.State()}
	}

	g.cursor.Move(in.First(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight))

	var events core.Events
	switch {
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		events = g.selectSquare()
	case in.Has(core.ActionCancel):
		if !g.session.State().Chaining {
			g.cursor.Drop()
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

// selectSquare picks up a piece or plays the selected piece to the square
// under the cursor.
func (g *Game) selectSquare() core.Events {
	s := g.session.State()
	pos := g.cursor.Pos

	if !g.cursor.Picked {
		if len(g.rules.MovesFrom(s, pos)) > 0 {
			g.cursor.Pick()
		}
		return nil
	}

	if pos == g.cursor.Selected {
		if !s.Chaining {
			g.cursor.Drop()
		}
		return nil
	}

	m := Move{From: g.cursor.Selected, To: pos}
	if !slices.Contains(g.rules.MovesFrom(s, m.From), m) {
		// Not a legal destination: switch to another movable piece.
		if !s.Chaining && len(g.rules.MovesFrom(s, pos)) > 0 {
			g.cursor.Pick()
		}
		return nil
	}

	events := g.session.Apply(m)

	g.lastMove = &m
	if next := g.session.State(); next.Chaining {
		g.cursor.Selected = next.Chain
		g.cursor.Picked = true
	} else {
		g.cursor.Drop()
	}
	return events
}

// targets lists where the selected piece may go.
func (g *Game) targets() []grid.Coord {
	if !g.cursor.Picked {
		return nil
	}
	var out []grid.Coord
	for _, m := range g.rules.MovesFrom(g.session.State(), g.cursor.Selected) {
		out = append(out, m.To)
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session.State()
	return core.GameState{
		Score:    s.Captured[core.Player1],
		GameOver: s.Over,
		Paused:   g.tooSmall,
	}
}

// Turn returns the side to move.
func (g *Game) Turn() multiplayer.PlayerID {
	return g.session.State().Turn
}

// Result reports the finished match.
func (g *Game) Result() (multiplayer.MatchResult, bool) {
	s := g.session.State()
	if !s.Over {
		return multiplayer.MatchResult{}, false
	}
	return multiplayer.MatchResult{
		MatchID: multiplayer.MatchID(g.session.ID()),
		GameID:  g.ID(),
		Reason:  multiplayer.MatchEndReasonNoMoves,
		Winner:  s.Winner,
		Plies:   s.Plies,
		Score1:  s.Captured[core.Player1],
		Score2:  s.Captured[core.Player2],
	}, true
}

// Recording captures the current session for storage.
func (g *Game) Recording() (engine.Recording, bool) {
	if g.session == nil || g.session.Tick() == 0 {
		return engine.Recording{}, false
	}
	rec, err := g.session.Record(g.ID(), g.State().Score)
	if err != nil {
		return engine.Recording{}, false
	}
	if rec.Config, err = config.Snapshot(g.cfg); err != nil {
		return engine.Recording{}, false
	}
	return rec, true
}

// Verify replays rec against the settings it was recorded with.
func (g *Game) Verify(ctx context.Context, rec engine.Recording, opts engine.ReplayOptions) error {
	cfg, err := config.FromSnapshot[config.CheckersConfig]("checkers", rec.Config)
	if err != nil {
		return err
	}
	_, err = engine.Replay[State, Move](ctx, NewRules(cfg), rec, opts)
	return err
}
