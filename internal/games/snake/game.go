package snake

import (
	"context"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// levelClearDuration is how long the level banner stays up (~1.5s at 60 FPS).
const levelClearDuration = 90

// Game adapts the Snake rules to the platform's tick loop.
type Game struct {
	mode       Mode
	cfg        config.SnakeConfig
	rules      Rules
	session    *engine.Session[State, core.Action]
	difficulty *config.DifficultyManager
	tick       uint64

	moveTicker int         // Counts ticks until next move
	pending    core.Action // Buffered direction for next move

	hudHeight  int
	mapOffsetX int
	mapOffsetY int

	// Screen dimensions
	screenW int
	screenH int

	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a new campaign mode Snake game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode Snake game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

var (
	_ registry.Replayable = (*Game)(nil)
	_ registry.Leveled    = (*Game)(nil)
)

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "snake_endless"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Snake (Endless)"
	}
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig(cfg.ConfigPath)
	config.ApplyPreset(&g.cfg.Difficulty, config.DifficultyPreset(cfg.Difficulty))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tick = 0
	g.moveTicker = 0
	g.pending = core.ActionNone
	g.paused = false
	g.levelClearTicks = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.hudHeight = 2 // Top HUD lines

	g.rules = NewRules(g.cfg, g.mode, cfg.Level)
	g.session = engine.NewSession[State, core.Action](g.rules, cfg.Seed)

	// Check if screen is too small, then center the map
	requiredW := g.rules.Cols + 2
	requiredH := g.rules.Rows + g.hudHeight + 2
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
	g.mapOffsetX = (g.screenW - g.rules.Cols) / 2
	g.mapOffsetY = g.hudHeight + 1
}

// LevelNames lists the campaign levels of the default configuration.
func (g *Game) LevelNames() []string {
	cfg, err := config.LoadSnake("")
	if err != nil {
		return nil
	}
	names := make([]string, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		names[i] = lvl.Name
	}
	return names
}

// loadConfig reads the Snake configuration, falling back to the built-in
// defaults when a custom file cannot be used.
func (g *Game) loadConfig(path string) {
	cfg, err := config.LoadSnake(path)
	if err != nil {
		cfg, _ = config.LoadSnake("")
	}
	g.cfg = cfg
}

// moveEveryTicks is the current move interval in platform ticks.
func (g *Game) moveEveryTicks() int {
	s := g.session.State()
	base := g.cfg.Timing.MoveEveryTicks
	if lvl := g.rules.LevelAt(s); lvl.MoveEveryTicks > 0 {
		base = lvl.MoveEveryTicks
	}
	if base <= 0 {
		base = 6
	}

	// In endless mode each full cycle of maps is one tick faster.
	if g.mode == ModeEndless && len(g.rules.Levels) > 0 {
		base = max(1, base-s.Level/len(g.rules.Levels))
	}
	return g.difficulty.Interval(base, g.cfg.Timing.MinEveryTicks, s.Score, int(g.tick))
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Don't process if game over, paused or too small
	if g.session.Over() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle level cleared banner
	if g.levelClearTicks > 0 {
		g.levelClearTicks--
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	// Move snake on tick interval
	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks() {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	events := g.session.Apply(g.pending)
	g.pending = core.ActionNone
	if events.Has(core.EventLevelCleared) && !g.session.Over() {
		g.levelClearTicks = levelClearDuration
	}

	return core.StepResult{State: g.State(), Events: events}
}

// processInput buffers a direction change for the next move.
func (g *Game) processInput(input core.InputFrame) {
	a := input.First(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight)
	if a == core.ActionNone {
		return
	}

	// Prevent instant reversal
	d, _ := a.Dir()
	if d == g.session.State().Dir.Opposite() {
		return
	}
	g.pending = a
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.State().Score,
		GameOver: g.session.Over(),
		Paused:   g.paused || g.tooSmall || g.levelClearTicks > 0,
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
	rec.Level = g.rules.StartLevel
	if rec.Config, err = config.Snapshot(g.cfg); err != nil {
		return engine.Recording{}, false
	}
	return rec, true
}

// Verify replays rec against the settings it was recorded with.
func (g *Game) Verify(ctx context.Context, rec engine.Recording, opts engine.ReplayOptions) error {
	cfg, err := config.FromSnapshot[config.SnakeConfig]("snake", rec.Config)
	if err != nil {
		return err
	}
	_, err = engine.Replay[State, core.Action](ctx, NewRules(cfg, g.mode, rec.Level), rec, opts)
	return err
}
