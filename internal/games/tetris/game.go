package tetris

import (
	"context"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Player actions applied in this order when several arrive in one tick.
var playerActions = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionRotateCW,
	core.ActionUp,
	core.ActionRotateCCW,
	core.ActionDown,
	core.ActionSoftDrop,
	core.ActionHardDrop,
}

// Game adapts the Tetris rules to the platform's tick loop.
type Game struct {
	cfg        config.TetrisConfig
	rules      Rules
	session    *engine.Session[State, core.Action]
	difficulty *config.DifficultyManager
	tick       uint64

	dropTicker int // Ticks since the last gravity step

	// Layout
	screenW int
	screenH int
	originX int
	originY int

	paused   bool
	tooSmall bool
}

// New creates a new Tetris game.
func New() *Game {
	return &Game{}
}

var _ registry.Replayable = (*Game)(nil)

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tetris" }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig(cfg.ConfigPath)
	config.ApplyPreset(&g.cfg.Difficulty, config.DifficultyPreset(cfg.Difficulty))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tick = 0
	g.dropTicker = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.rules = NewRules(g.cfg)
	g.session = engine.NewSession[State, core.Action](g.rules, cfg.Seed)

	w, h := layoutSize(g.rules)
	g.tooSmall = g.screenW < w || g.screenH < h
	g.originX = (g.screenW - w) / 2
	g.originY = hudHeight
}

// loadConfig reads the Tetris configuration, falling back to the built-in
// defaults when a custom file cannot be used.
func (g *Game) loadConfig(path string) {
	cfg, err := config.LoadTetris(path)
	if err != nil {
		cfg, _ = config.LoadTetris("")
	}
	g.cfg = cfg
}

// dropEveryTicks is the gravity interval in platform ticks.
func (g *Game) dropEveryTicks() int {
	base := g.cfg.Timing.MoveEveryTicks
	if base <= 0 {
		base = 60
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

	var events core.Events
	for _, a := range playerActions {
		if !in.Has(a) || g.session.Over() {
			continue
		}
		events = append(events, g.session.Apply(a)...)
		if a == core.ActionHardDrop || a == core.ActionDown || a == core.ActionSoftDrop {
			g.dropTicker = 0
		}
	}

	g.dropTicker++
	if g.dropTicker >= g.dropEveryTicks() && !g.session.Over() {
		g.dropTicker = 0
		events = append(events, g.session.Apply(core.ActionNone)...)
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
		Paused:   g.paused || g.tooSmall,
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
	cfg, err := config.FromSnapshot[config.TetrisConfig]("tetris", rec.Config)
	if err != nil {
		return err
	}
	_, err = engine.Replay[State, core.Action](ctx, NewRules(cfg), rec, opts)
	return err
}
