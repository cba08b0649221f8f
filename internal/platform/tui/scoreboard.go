package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	tableMinWidth      = 50  // Minimum table width
	maxScores          = 100 // Max scores to load

	sharedTimeout = 2 * time.Second // Budget for one shared ranking read
)

// ScoreSource ranks scores shared between servers, e.g. *storage.Leaderboard.
type ScoreSource interface {
	Top(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Replays  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Replays, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Replays, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev game"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next game"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev game"),
		),
		Replays: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "scores/replays"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardView says what the table lists for the selected game.
type boardView int

const (
	viewScores  boardView = iota // high scores, or match history for board games
	viewReplays                  // stored recordings
)

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games       []registry.GameInfo // List of available games
	boardGames  map[string]bool     // Games that store matches instead of scores
	gameCursor  int                 // Currently selected game index
	store       *storage.Store      // Score storage
	shared      ScoreSource         // Optional cross-server ranking
	sharedShown bool                // Whether the rows came from shared
	view        boardView
	rows        []table.Row
	wins        [3]int
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show game list sidebar
}

// NewScoreboardModel creates a new scoreboard model. When shared is set,
// high scores come from it and fall back to store if it cannot answer.
func NewScoreboardModel(store *storage.Store, shared ScoreSource, width, height int) ScoreboardModel {
	games := registry.List()

	// Filter out endless modes for cleaner display
	filteredGames := make([]registry.GameInfo, 0, len(games))
	boardGames := make(map[string]bool)
	for _, g := range games {
		if strings.HasSuffix(g.ID, "_endless") {
			continue
		}
		filteredGames = append(filteredGames, g)
		if inst, err := registry.Create(g.ID); err == nil {
			_, boardGames[g.ID] = inst.(multiplayer.BoardGame)
		}
	}

	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:       filteredGames,
		boardGames:  boardGames,
		gameCursor:  0,
		store:       store,
		shared:      shared,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	// Load scores for first game
	m.reload()

	return m
}

// currentGame returns the selected game ID, or "" when nothing is registered.
func (m *ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// columns returns the table layout for the current view.
func (m *ScoreboardModel) columns() []table.Column {
	switch {
	case m.view == viewReplays:
		return []table.Column{
			{Title: "ID", Width: 10},
			{Title: "Score", Width: 8},
			{Title: "Moves", Width: 7},
			{Title: "Result", Width: 8},
			{Title: "Date", Width: 14},
		}
	case m.boardGames[m.currentGame()]:
		return []table.Column{
			{Title: "Winner", Width: 8},
			{Title: "Reason", Width: 12},
			{Title: "Plies", Width: 6},
			{Title: "Date", Width: 14},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Player", Width: 12},
			{Title: "Date", Width: 18},
		}
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := m.columns()

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare room to the last column
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width
	}
	if last := &columns[len(columns)-1]; tableWidth-used > last.Width {
		last.Width = min(tableWidth-used, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload rebuilds the table for the selected game and view.
func (m *ScoreboardModel) reload() {
	m.table = m.createTable()
	m.rows = nil
	m.wins = [3]int{}
	m.sharedShown = false

	gameID := m.currentGame()
	if m.store != nil && gameID != "" {
		switch {
		case m.view == viewReplays:
			m.rows = m.replayRows(gameID)
		case m.boardGames[gameID]:
			m.rows = m.matchRows(gameID)
		default:
			m.rows = m.scoreRows(gameID)
		}
	}

	m.table.SetRows(m.rows)

	// Reset cursor to top
	m.table.GotoTop()
}

func (m *ScoreboardModel) scoreRows(gameID string) []table.Row {
	scores, ok := m.sharedScores(gameID)
	if !ok {
		var err error
		if scores, err = m.store.TopScores(gameID, maxScores); err != nil {
			return nil
		}
	}
	m.sharedShown = ok
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		date := "-"
		if !s.CreatedAt.IsZero() {
			date = s.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			player,
			date,
		}
	}
	return rows
}

// sharedScores reads the shared ranking. ok is false when there is none
// or it failed.
func (m *ScoreboardModel) sharedScores(gameID string) ([]storage.ScoreEntry, bool) {
	if m.shared == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), sharedTimeout)
	defer cancel()

	scores, err := m.shared.Top(ctx, gameID, maxScores)
	if err != nil {
		log.Warn("shared leaderboard unavailable, showing local scores", "game", gameID, "error", err)
		return nil, false
	}
	return scores, true
}

func (m *ScoreboardModel) matchRows(gameID string) []table.Row {
	matches, err := m.store.RecentMatches(gameID, maxScores)
	if err != nil {
		return nil
	}
	m.wins, _ = m.store.Wins(gameID)

	rows := make([]table.Row, len(matches))
	for i, rec := range matches {
		winner := "draw"
		if !rec.Result.Draw() {
			winner = sideName(gameID, rec.Result.Winner)
		}
		rows[i] = table.Row{
			winner,
			rec.Reason,
			fmt.Sprintf("%d", rec.Result.Plies),
			rec.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) replayRows(gameID string) []table.Row {
	recs, err := m.store.Replays(gameID, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(recs))
	for i, rec := range recs {
		outcome := rec.Outcome
		if outcome == "" {
			outcome = "-"
		}
		rows[i] = table.Row{
			shortID(rec.ID),
			fmt.Sprintf("%d", rec.Score),
			fmt.Sprintf("%d", rec.Plies),
			outcome,
			rec.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// shortID trims a replay UUID to a prefix that is still unique in practice.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sideName names a board game side the way the game itself does.
func sideName(gameID string, p multiplayer.PlayerID) string {
	switch {
	case gameID == "chess" && p == multiplayer.Player1:
		return "White"
	case gameID == "chess":
		return "Black"
	case p == multiplayer.Player1:
		return "Blue"
	default:
		return "Red"
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replays):
			m.view = 1 - m.view
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			if len(m.games) > 0 {
				m.gameCursor--
				if m.gameCursor < 0 {
					m.gameCursor = len(m.games) - 1
				}
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	switch {
	case len(m.games) == 0:
	case m.view == viewReplays:
		title = fmt.Sprintf("REPLAYS - %s", m.games[m.gameCursor].Title)
	case m.boardGames[m.currentGame()]:
		title = fmt.Sprintf("MATCHES - %s", m.games[m.gameCursor].Title)
	case m.sharedShown:
		title = fmt.Sprintf("HIGH SCORES - %s (all servers)", m.games[m.gameCursor].Title)
	default:
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: game tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with sidebar for game selection.
func (m ScoreboardModel) renderWideLayout() string {
	// Sidebar (game list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := g.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableContent := m.renderTableContent()
	tableRendered := tableStyle.Render(tableContent)

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the scoreboard with game tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	// Game tabs (horizontal)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		shortName := g.Title
		if len(shortName) > 10 {
			shortName = shortName[:9] + "."
		}
		if i == m.gameCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	// Wrap tabs if needed
	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 {
		// Just show current game with arrows
		current := m.games[m.gameCursor].Title
		tabLine = fmt.Sprintf("< %s >", current)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No scores recorded yet.\nPlay a game to set a high score!"
		switch {
		case m.view == viewReplays:
			msg = "No replays recorded yet.\nFinished games are recorded automatically."
		case m.boardGames[m.currentGame()]:
			msg = "No matches played yet.\nFinish a game to record the result."
		}
		return emptyStyle.Render(msg)
	}

	if m.view == viewScores && m.boardGames[m.currentGame()] {
		gameID := m.currentGame()
		tally := fmt.Sprintf("%s %d  %s %d  draws %d\n",
			sideName(gameID, multiplayer.Player1), m.wins[multiplayer.Player1],
			sideName(gameID, multiplayer.Player2), m.wins[multiplayer.Player2],
			m.wins[0])
		return tally + m.table.View()
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, nil, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
