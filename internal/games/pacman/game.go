package pacman

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// lifeLostDuration is how long play freezes after a ghost catches Pac-Man.
const lifeLostDuration = 60

// Game adapts the Pac-Man rules to the platform's tick loop.
type Game struct {
	cfg        config.PacmanConfig
	rules      Rules
	session    *engine.Session[State, core.Action]
	difficulty *config.DifficultyManager
	tick       uint64

	moveTicker int
	pending    core.Action

	screenW int
	screenH int
	originX int
	originY int

	paused       bool
	tooSmall     bool
	lifeLostTick int
}

// New creates a new Pac-Man game.
func New() *Game {
	return &Game{}
}

var _ registry.Replayable = (*Game)(nil)

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "pacman" }

// Title returns the display name.
func (g *Game) Title() string { return "Pac-Man" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadRules(cfg.ConfigPath)
	config.ApplyPreset(&g.cfg.Difficulty, config.DifficultyPreset(cfg.Difficulty))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tick = 0
	g.moveTicker = 0
	g.pending = core.ActionNone
	g.paused = false
	g.lifeLostTick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.session = engine.NewSession[State, core.Action](g.rules, cfg.Seed)

	rows, cols := g.rules.Maze.Cells.Dims()
	w, h := cols*cellWidth+2, rows+hudHeight+2
	g.tooSmall = g.screenW < w || g.screenH < h
	g.originX = (g.screenW - cols*cellWidth) / 2
	g.originY = hudHeight + 1
}

// loadRules reads the configuration and builds the rules, falling back to
// the built-in maze when a custom file is missing or its maze is unusable.
func (g *Game) loadRules(path string) {
	cfg, err := config.LoadPacman(path)
	if err == nil {
		var rules Rules
		if rules, err = NewRules(cfg); err == nil {
			g.cfg, g.rules = cfg, rules
			return
		}
	}
	if path != "" {
		log.Warn("pacman config rejected, using defaults", "path", path, "err", err)
	}
	g.cfg, _ = config.LoadPacman("")
	g.rules, _ = NewRules(g.cfg)
}

// moveEveryTicks is the current move interval in platform ticks.
func (g *Game) moveEveryTicks() int {
	base := g.cfg.Timing.MoveEveryTicks
	if base <= 0 {
		base = 18
	}
	return g.difficulty.Interval(base, g.cfg.Timing.MinEveryTicks, g.session.State().Score, int(g.tick))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.session.Over() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.lifeLostTick > 0 {
		g.lifeLostTick--
		return core.StepResult{State: g.State()}
	}

	if a := in.First(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight); a != core.ActionNone {
		g.pending = a
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks() {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	events := g.session.Apply(g.pending)
	g.pending = core.ActionNone
	if events.Has(core.EventLifeLost) && !g.session.Over() {
		g.lifeLostTick = lifeLostDuration
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.State().Score,
		GameOver: g.session.Over(),
		Paused:   g.paused || g.tooSmall || g.lifeLostTick > 0,
	}
}

// Recording captures the current session for storage.
func (g *Game) Recording() (engine.Recording, bool) {
	if g.session == nil || g.session.Tick() == 0 {
		return engine.Recording{}, false
	}
	rec, err := g.session.Record(g.ID(), g.session.State().Score)
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
	cfg, err := config.FromSnapshot[config.PacmanConfig]("pacman", rec.Config)
	if err != nil {
		return err
	}
	rules, err := NewRules(cfg)
	if err != nil {
		return err
	}
	_, err = engine.Replay[State, core.Action](ctx, rules, rec, opts)
	return err
}
