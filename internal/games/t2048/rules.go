package t2048

import (
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// State is one position of a 2048 game.
type State struct {
	Board      Board
	Score      int
	Level      int // 0-based campaign level
	Target     int // tile that clears the level, 0 in endless mode
	FourChance float64
	Won        bool // campaign finished
	Lost       bool // no moves left
}

// Rules implements engine.Rules for 2048.
type Rules struct {
	Mode       Mode
	Size       int
	StartTiles int
	FourChance float64
	Levels     []config.T2048Level
	StartLevel int // 0-based
}

// NewRules builds the rule set from configuration.
func NewRules(cfg config.T2048Config, mode Mode, startLevel int) Rules {
	r := Rules{
		Mode:       mode,
		Size:       cfg.Board.Size,
		StartTiles: cfg.Spawn.StartTiles,
		FourChance: cfg.Spawn.FourChance,
		Levels:     cfg.Levels,
	}
	if r.Size < 2 {
		r.Size = DefaultBoardSize
	}
	if r.StartTiles <= 0 {
		r.StartTiles = 2
	}
	if mode == ModeCampaign && startLevel > 0 && startLevel < len(r.Levels) {
		r.StartLevel = startLevel
	}
	return r
}

// Init builds an empty board with the opening tiles.
func (r Rules) Init(rng core.RNG) State {
	s := State{Board: NewBoard(r.Size), Level: r.StartLevel}
	r.loadLevel(&s)
	for range r.StartTiles {
		spawnTile(s.Board, s.FourChance, rng)
	}
	return s
}

// loadLevel sets up the current level parameters.
func (r Rules) loadLevel(s *State) {
	if r.Mode == ModeEndless || len(r.Levels) == 0 {
		s.Target = 0
		s.FourChance = r.FourChance
		return
	}

	level := r.Levels[min(s.Level, len(r.Levels)-1)]
	s.Target = level.Target
	s.FourChance = level.FourChance
	if s.FourChance <= 0 {
		s.FourChance = r.FourChance
	}
}

// Apply slides the board. Moves that change nothing are ignored and
// spawn nothing.
func (r Rules) Apply(s State, a core.Action, rng core.RNG) (State, core.Events) {
	if s.Won || s.Lost {
		return s, nil
	}
	dir, ok := a.Dir()
	if !ok {
		return s, nil
	}

	res := Slide(s.Board, dir)
	if !res.Changed {
		return s, nil
	}

	var events core.Events
	out := s
	out.Board = res.Board
	out.Score += res.Score
	for _, p := range res.Merges {
		events.Add(core.EventMerge, out.Board.At(p), p)
	}
	if res.Score > 0 {
		events.Add(core.EventScore, res.Score, grid.Coord{})
	}

	// Check for level target (campaign only)
	if out.Target > 0 && MaxTile(out.Board) >= out.Target {
		events.Add(core.EventLevelCleared, out.Level+1, grid.Coord{})
		if out.Level >= len(r.Levels)-1 {
			out.Won = true
			events.Add(core.EventWin, 0, grid.Coord{})
			return out, events
		}
		// Keep current board and score, just raise the target.
		out.Level++
		r.loadLevel(&out)
	} else {
		spawnTile(out.Board, out.FourChance, rng)
	}

	if IsGameOver(out.Board) {
		out.Lost = true
		events.Add(core.EventLoss, 0, grid.Coord{})
	}
	return out, events
}

// Hash digests the board, score and level.
func (r Rules) Hash(s State) uint64 {
	h := s.Board.Hash()
	h = h*31 + uint64(s.Score)
	h = h*31 + uint64(s.Level)
	return h
}

// spawnTile places a 2 (or a 4 with probability fourChance) on a random
// empty cell. Returns false when the board is full.
func spawnTile(board Board, fourChance float64, rng core.RNG) (grid.Coord, bool) {
	empty := EmptyCells(board)
	if len(empty) == 0 {
		return grid.Coord{}, false
	}

	cell := core.Pick(rng, empty)
	value := 2
	if rng.Float64() < fourChance {
		value = 4
	}
	board.Put(cell, value)
	return cell, true
}
