package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// ModelOptions controls what a Model persists when a game ends.
type ModelOptions struct {
	Store  *storage.Store // nil disables persistence
	Player string         // stored with scores, e.g. the SSH user
	Record bool           // also store a replay of every finished game

	// Shared ranks high scores across servers on the scoreboard.
	Shared ScoreSource

	// Embedded models hand control back to a parent on Back instead of
	// quitting the program.
	Embedded bool
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       ModelOptions
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool   // Whether the finished game has been persisted
	gen        uint64 // Tick loop generation, see TickMsg
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gen:        tickGen.Add(1),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.persist()
		m.quitting = true
		return m, tea.Quit
	}

	for _, a := range actions {
		switch a {
		case core.ActionBack:
			// Back leaves a finished or paused game, and pauses a running one.
			if m.gameState.GameOver || m.gameState.Paused {
				m.persist()
				m.backToMenu = true
				if !m.opts.Embedded {
					m.quitting = true
					return m, tea.Quit
				}
				return m, nil
			}
			m.inputFrame.Set(core.ActionPause)
		case core.ActionRestart:
			if m.gameState.GameOver {
				m.inputFrame.Set(a)
			}
		default:
			m.inputFrame.Set(a)
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games lay themselves out in Reset, so a resize before the first move
	// simply starts over at the new size. Later resizes keep the game.
	if !m.gameState.GameOver && m.untouched() {
		m.game.Reset(m.config)
	}

	return m, nil
}

// untouched reports whether no move has been recorded yet.
func (m Model) untouched() bool {
	rp, ok := m.game.(registry.Replayable)
	if !ok {
		return true
	}
	_, played := rp.Recording()
	return !played
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.persist()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// persist stores the finished game once: a match result for board games,
// otherwise the score, plus a replay when recording is on. Storage
// failures are logged and never interrupt play.
func (m *Model) persist() {
	if m.saved || m.opts.Store == nil {
		return
	}
	if !m.gameState.GameOver && !m.opts.Record {
		return
	}
	m.saved = true
	store := m.opts.Store

	if bg, ok := m.game.(multiplayer.BoardGame); ok {
		if res, over := bg.Result(); over {
			if _, err := store.SaveMatch(res); err != nil {
				log.Warn("Could not save match", "game", m.game.ID(), "err", err)
			}
		}
	} else if m.gameState.GameOver && m.gameState.Score > 0 {
		if _, err := store.SaveScore(m.game.ID(), m.opts.Player, m.gameState.Score); err != nil {
			log.Warn("Could not save score", "game", m.game.ID(), "err", err)
		}
	}

	if !m.opts.Record {
		return
	}
	rp, ok := m.game.(registry.Replayable)
	if !ok {
		return
	}
	if rec, ok := rp.Recording(); ok {
		if err := store.SaveReplay(rec); err != nil {
			log.Warn("Could not save replay", "game", m.game.ID(), "err", err)
		} else {
			log.Debug("Replay saved", "id", rec.ID, "plies", rec.Plies)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("Could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("Could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
