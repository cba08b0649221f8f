package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	GameID string // the campaign ID, or its "_endless" variant
	Level  int    // 0-based starting level
}

// LevelMenuModel lets users choose campaign, endless mode or a starting
// level for any game that implements registry.Leveled.
type LevelMenuModel struct {
	gameID        string
	title         string
	levels        []string
	hasEndless    bool
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *LevelSelection
	quitting      bool
	back          bool
}

// NewLevelMenuModel creates the menu for one leveled game.
func NewLevelMenuModel(gameID, title string, levels []string, width, height int) LevelMenuModel {
	return LevelMenuModel{
		gameID:     gameID,
		title:      title,
		levels:     levels,
		hasEndless: registry.Exists(gameID + "_endless"),
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
	}
}

// options lists the top-level choices.
func (m LevelMenuModel) options() []string {
	opts := []string{fmt.Sprintf("Campaign (%d levels)", len(m.levels))}
	if m.hasEndless {
		opts = append(opts, "Endless Mode")
	}
	return append(opts, "Select Level...")
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelMenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	opts := m.options()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch {
		case m.cursor == 0:
			m.selection = &LevelSelection{GameID: m.gameID}
			return m, tea.Quit
		case m.cursor == len(opts)-1:
			m.inLevelSelect = true
			m.levelCursor = 0
		default:
			m.selection = &LevelSelection{GameID: m.gameID + "_endless"}
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selection = &LevelSelection{GameID: m.gameID, Level: m.levelCursor}
			return m, tea.Quit
		}
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.inLevelSelect {
		b.WriteString(centerText("SELECT LEVEL", m.width))
		b.WriteString("\n\n")
		for i, name := range m.levels {
			cursor := "  "
			if i == m.levelCursor {
				cursor = "> "
			}
			b.WriteString(centerText(fmt.Sprintf("%s%2d. %s", cursor, i+1, name), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText(spaced(strings.ToUpper(m.title)), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Select game mode:", m.width))
		b.WriteString("\n\n")
		for i, opt := range m.options() {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+opt, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// spaced puts a space between letters, as in menu banners.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// Selected returns the selection, or nil if the user backed out.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelMenu runs the level selection for a leveled game. It returns nil
// when the user goes back or quits.
func RunLevelMenu(gameID string, game registry.Leveled, title string, cfg core.RuntimeConfig) (*LevelSelection, error) {
	model := NewLevelMenuModel(gameID, title, game.LevelNames(), cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
