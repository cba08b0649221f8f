// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board      SnakeBoard       `yaml:"board"`
	Food       SnakeFood        `yaml:"food"`
	Timing     TimingConfig     `yaml:"timing"`
	Levels     []SnakeLevel     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeBoard defines the playfield for Snake.
type SnakeBoard struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	StartLength int `yaml:"start_length"`
}

// SnakeFood defines food values and spawn odds.
// Super food is rolled first, then bonus; everything else is regular.
type SnakeFood struct {
	RegularPoints int     `yaml:"regular_points"`
	BonusPoints   int     `yaml:"bonus_points"`
	SuperPoints   int     `yaml:"super_points"`
	SuperChance   float64 `yaml:"super_chance"`
	BonusChance   float64 `yaml:"bonus_chance"`
}

// SnakeLevel is one campaign stage: a wall layout and a food target.
type SnakeLevel struct {
	Name           string       `yaml:"name"`
	TargetFood     int          `yaml:"target_food"`
	MoveEveryTicks int          `yaml:"move_every_ticks"` // 0 keeps the global timing
	Walls          []RectConfig `yaml:"walls"`
}

// RectConfig is a block of cells in board coordinates.
type RectConfig struct {
	Row  int `yaml:"row"`
	Col  int `yaml:"col"`
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board  T2048Board   `yaml:"board"`
	Spawn  T2048Spawn   `yaml:"spawn"`
	Levels []T2048Level `yaml:"levels"`
}

// T2048Board defines the board for 2048.
type T2048Board struct {
	Size int `yaml:"size"`
}

// T2048Spawn defines tile spawning for 2048.
type T2048Spawn struct {
	StartTiles int     `yaml:"start_tiles"`
	FourChance float64 `yaml:"four_chance"` // endless mode and levels without their own value
}

// T2048Level defines a campaign level with a target tile.
type T2048Level struct {
	Name       string  `yaml:"name"`
	Target     int     `yaml:"target"`
	FourChance float64 `yaml:"four_chance"`
}

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Arena      TetrisArena      `yaml:"arena"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisArena defines the well dimensions.
type TetrisArena struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TetrisScoring defines line-clear scoring.
// The first row of a sweep scores LinePoints, each further row doubles it.
type TetrisScoring struct {
	LinePoints int `yaml:"line_points"`
}

// PacmanConfig contains all configuration for the Pac-Man game.
type PacmanConfig struct {
	Maze       []string         `yaml:"maze"` // '#' wall, '.' dot, ' ' path, 'P' start, 'G' ghost
	DotPoints  int              `yaml:"dot_points"`
	Lives      int              `yaml:"lives"`
	Ghosts     PacmanGhosts     `yaml:"ghosts"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanGhosts defines ghost behaviour.
type PacmanGhosts struct {
	Enabled   bool `yaml:"enabled"`
	MoveEvery int  `yaml:"move_every"` // ghosts step once per this many Pac-Man steps
}

// CheckersConfig contains configuration for Checkers.
type CheckersConfig struct {
	ForcedCapture bool `yaml:"forced_capture"`
}

// ChessConfig contains configuration for Chess.
type ChessConfig struct {
	RepetitionLimit int `yaml:"repetition_limit"` // positions repeated this often are drawn; 0 disables
}

// TimingConfig defines how often a real-time game advances, in platform ticks.
type TimingConfig struct {
	MoveEveryTicks int `yaml:"move_every_ticks"`
	MinEveryTicks  int `yaml:"min_every_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// Progression names what drives difficulty up during a game.
type Progression string

const (
	ProgressionNone  Progression = "none"
	ProgressionScore Progression = "score"
	ProgressionTime  Progression = "time"
)

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  Progression `yaml:"type"`
	MaxAt int         `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty block based on a preset.
// An empty preset leaves the loaded configuration alone.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}
