package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "campaign" or "endless"
	Level   int    // Current level (1-indexed for display), 0 for endless
	Target  int    // Current target tile value
	Score   int
	Board   [][]int
	MaxTile int // Highest tile on board
	Hash    uint64
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case s.Won:
		state = StateWin
	case s.Lost:
		state = StateGameOver
	case g.levelClearTicks > 0:
		state = StateLevelCleared
	}

	level := s.Level + 1
	if g.mode == ModeEndless {
		level = 0
	}

	board := make([][]int, s.Board.Rows())
	for r := range board {
		board[r] = s.Board.Row(r)
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   level,
		Target:  s.Target,
		Score:   s.Score,
		Board:   board,
		MaxTile: MaxTile(s.Board),
		Hash:    g.session.Hash(),
		State:   state,
	}
}
