package snake

import "github.com/vovakirdan/grid-arcade/internal/grid"

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
	Tick           uint64
	Level          int    // Current level (1-indexed for display)
	Mode           string // "campaign" or "endless"
	Score          int
	FoodEaten      int // Food eaten in current level
	SnakeLen       int
	Head           grid.Coord
	Dir            grid.Dir
	Food           grid.Coord
	FoodKind       FoodKind
	MoveEveryTicks int
	Hash           uint64
	State          GameStateType
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
	case s.Dead:
		state = StateGameOver
	case g.levelClearTicks > 0:
		state = StateLevelCleared
	}

	return Snapshot{
		Tick:           g.tick,
		Level:          s.Level + 1,
		Mode:           string(g.mode),
		Score:          s.Score,
		FoodEaten:      s.FoodEaten,
		SnakeLen:       len(s.Body),
		Head:           s.Head(),
		Dir:            s.Dir,
		Food:           s.Food,
		FoodKind:       s.FoodKind,
		MoveEveryTicks: g.moveEveryTicks(),
		Hash:           g.session.Hash(),
		State:          state,
	}
}
