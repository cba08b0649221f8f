package t2048

import (
	"context"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// levelClearDuration is how long the level banner stays up (2s at 60fps).
const levelClearDuration = 120

// Game adapts the 2048 rules to the platform's tick loop.
type Game struct {
	mode    Mode
	cfg     config.T2048Config
	rules   Rules
	session *engine.Session[State, core.Action]
	tick    uint64

	// Screen dimensions
	screenW int
	screenH int

	paused          bool
	tooSmall        bool
	levelClearTicks int // Banner ticks left after a level clear
	flashes         []flash
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

var (
	_ registry.Replayable = (*Game)(nil)
	_ registry.Leveled    = (*Game)(nil)
)

// LevelNames lists the campaign levels of the default configuration.
func (g *Game) LevelNames() []string {
	return LevelNames(DefaultLevels())
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig(cfg.ConfigPath)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.levelClearTicks = 0
	g.flashes = nil

	g.rules = NewRules(g.cfg, g.mode, cfg.Level)
	g.session = engine.NewSession[State, core.Action](g.rules, cfg.Seed)

	g.checkScreenSize()
}

// loadConfig reads the 2048 configuration, falling back to the built-in
// defaults when a custom file cannot be used.
func (g *Game) loadConfig(path string) {
	cfg, err := config.LoadT2048(path)
	if err != nil {
		cfg, _ = config.LoadT2048("")
	}
	g.cfg = cfg
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	// Board plus three HUD lines
	boardW, boardH := boardExtent(g.rules.Size)
	g.tooSmall = g.screenW < boardW+4 || g.screenH < boardH+hudHeight+1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.updateFlashes()

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Level cleared banner
	if g.levelClearTicks > 0 {
		g.levelClearTicks--
		return core.StepResult{State: g.State()}
	}

	// Don't process moves if game over or won
	if g.session.Over() {
		return core.StepResult{State: g.State()}
	}

	action := in.First(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight)
	if action == core.ActionNone {
		return core.StepResult{State: g.State()}
	}

	events := g.session.Apply(action)
	g.startFlashes(events)
	if events.Has(core.EventLevelCleared) && !g.session.Over() {
		g.levelClearTicks = levelClearDuration
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
	cfg, err := config.FromSnapshot[config.T2048Config]("2048", rec.Config)
	if err != nil {
		return err
	}
	_, err = engine.Replay[State, core.Action](ctx, NewRules(cfg, g.mode, rec.Level), rec, opts)
	return err
}
