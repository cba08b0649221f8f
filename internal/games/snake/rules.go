// Package snake implements Snake with a level campaign and an endless mode.
package snake

import (
	"slices"

	"github.com/kamstrup/intmap"

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

// endlessFoodPerLevel is how much food rotates the endless map.
const endlessFoodPerLevel = 10

// Cell is the content of a board cell. The snake and its food live
// beside the board, not in it.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
)

// FoodKind is the type of the current food item.
type FoodKind uint8

const (
	FoodRegular FoodKind = iota
	FoodBonus
	FoodSuper
)

func (k FoodKind) String() string {
	switch k {
	case FoodBonus:
		return "bonus"
	case FoodSuper:
		return "super"
	default:
		return "regular"
	}
}

// State is one position of a Snake game.
type State struct {
	Board     *grid.Grid[Cell] // walls; out-of-bounds reads as CellWall
	Body      []grid.Coord     // head at index 0
	Dir       grid.Dir
	Food      grid.Coord
	FoodKind  FoodKind
	HasFood   bool
	Level     int // 0-based; in endless mode it keeps counting past the last map
	FoodEaten int // in the current level
	Score     int
	Dead      bool
	Won       bool
}

// Head returns the head cell.
func (s State) Head() grid.Coord { return s.Body[0] }

// Rules implements engine.Rules for Snake.
type Rules struct {
	Mode        Mode
	Rows, Cols  int
	StartLength int
	Food        config.SnakeFood
	Levels      []config.SnakeLevel
	StartLevel  int
}

// NewRules builds the rule set from configuration.
func NewRules(cfg config.SnakeConfig, mode Mode, startLevel int) Rules {
	r := Rules{
		Mode:        mode,
		Rows:        cfg.Board.Height,
		Cols:        cfg.Board.Width,
		StartLength: cfg.Board.StartLength,
		Food:        cfg.Food,
		Levels:      cfg.Levels,
	}
	if r.Rows < 5 {
		r.Rows = 20
	}
	if r.Cols < 5 {
		r.Cols = 48
	}
	if r.StartLength < 1 {
		r.StartLength = 3
	}
	if mode == ModeCampaign && startLevel > 0 && startLevel < len(r.Levels) {
		r.StartLevel = startLevel
	}
	return r
}

// level returns the map for a level index, cycling in endless mode.
func (r Rules) level(i int) config.SnakeLevel {
	if len(r.Levels) == 0 {
		return config.SnakeLevel{Name: "Open Field"}
	}
	return r.Levels[i%len(r.Levels)]
}

// LevelAt exposes the level map for a state.
func (r Rules) LevelAt(s State) config.SnakeLevel { return r.level(s.Level) }

// Init loads the starting level.
func (r Rules) Init(rng core.RNG) State {
	s := State{Level: r.StartLevel}
	r.loadLevel(&s, rng)
	return s
}

// loadLevel builds the level's walls, places the snake and spawns food.
func (r Rules) loadLevel(s *State, rng core.RNG) {
	board := grid.New(r.Rows, r.Cols, CellWall)
	for _, w := range r.level(s.Level).Walls {
		for row := w.Row; row < w.Row+w.Rows; row++ {
			for col := w.Col; col < w.Col+w.Cols; col++ {
				board.Set(row, col, CellWall)
			}
		}
	}

	s.Board = board
	s.FoodEaten = 0
	s.Body = r.placeSnake(board)
	s.Dir = grid.DirRight
	r.spawnFood(s, rng)
}

// placeSnake finds a free horizontal run for a snake heading right.
// The search is deterministic: rows outward from the middle, columns from
// the left quarter, requiring one free cell ahead of the head.
func (r Rules) placeSnake(board *grid.Grid[Cell]) []grid.Coord {
	need := r.StartLength + 1
	mid := r.Rows / 2

	for off := range r.Rows {
		row := mid + off/2
		if off%2 == 1 {
			row = mid - (off+1)/2
		}
		for col := r.Cols / 4; col+need <= r.Cols; col++ {
			if runIsFree(board, row, col, need) {
				body := make([]grid.Coord, r.StartLength)
				for i := range body {
					body[i] = grid.At(row, col+r.StartLength-1-i)
				}
				return body
			}
		}
	}

	// Degenerate layout: start in the corner and let the rules sort it out.
	return []grid.Coord{grid.At(0, 0)}
}

func runIsFree(board *grid.Grid[Cell], row, col, n int) bool {
	for c := col; c < col+n; c++ {
		if board.Get(row, c) != CellEmpty {
			return false
		}
	}
	return true
}

// occupancy indexes the body cells, mapping cell index to segment count.
func occupancy(cols int, body []grid.Coord) *intmap.Map[int, int] {
	occ := intmap.New[int, int](len(body))
	for _, p := range body {
		k := p.Row*cols + p.Col
		n, _ := occ.Get(k)
		occ.Put(k, n+1)
	}
	return occ
}

// spawnFood places food on a random cell free of walls and body.
// With no free cell left the board is full and the game is won.
func (r Rules) spawnFood(s *State, rng core.RNG) {
	occ := occupancy(r.Cols, s.Body)
	free := s.Board.Find(func(c Cell) bool { return c == CellEmpty })
	free = slices.DeleteFunc(free, func(p grid.Coord) bool {
		_, taken := occ.Get(p.Row*r.Cols + p.Col)
		return taken
	})

	if len(free) == 0 {
		s.HasFood = false
		return
	}

	s.Food = core.Pick(rng, free)
	s.HasFood = true
	switch {
	case rng.Float64() < r.Food.SuperChance:
		s.FoodKind = FoodSuper
	case rng.Float64() < r.Food.BonusChance:
		s.FoodKind = FoodBonus
	default:
		s.FoodKind = FoodRegular
	}
}

// points returns the score for a food kind.
func (r Rules) points(k FoodKind) int {
	switch k {
	case FoodSuper:
		return r.Food.SuperPoints
	case FoodBonus:
		return r.Food.BonusPoints
	default:
		return r.Food.RegularPoints
	}
}

// Apply advances the snake one cell. ActionNone keeps the heading; a
// direction that reverses the heading is ignored. Other actions are not
// moves and leave the state alone.
func (r Rules) Apply(s State, a core.Action, rng core.RNG) (State, core.Events) {
	if s.Dead || s.Won {
		return s, nil
	}

	dir := s.Dir
	if a != core.ActionNone {
		d, ok := a.Dir()
		if !ok {
			return s, nil
		}
		if d != s.Dir.Opposite() {
			dir = d
		}
	}

	var events core.Events
	out := s
	out.Dir = dir
	head := s.Head().Step(dir)

	// Wall or edge
	if s.Board.At(head) == CellWall {
		out.Dead = true
		events.Add(core.EventCollision, 0, head)
		events.Add(core.EventLoss, 0, head)
		return out, events
	}

	// Self collision. The tail cell moves away this step unless we grow.
	eating := s.HasFood && head == s.Food
	occ := occupancy(r.Cols, s.Body)
	if !eating {
		tail := s.Body[len(s.Body)-1]
		k := tail.Row*r.Cols + tail.Col
		if n, _ := occ.Get(k); n > 1 {
			occ.Put(k, n-1)
		} else {
			occ.Del(k)
		}
	}
	if _, hit := occ.Get(head.Row*r.Cols + head.Col); hit {
		out.Dead = true
		events.Add(core.EventCollision, 0, head)
		events.Add(core.EventLoss, 0, head)
		return out, events
	}

	keep := len(s.Body) - 1
	if eating {
		keep = len(s.Body)
	}
	out.Body = make([]grid.Coord, 0, keep+1)
	out.Body = append(out.Body, head)
	out.Body = append(out.Body, s.Body[:keep]...)

	if !eating {
		return out, events
	}

	pts := r.points(s.FoodKind)
	out.Score += pts
	out.FoodEaten++
	events.Add(core.EventFoodEaten, pts, head)
	events.Add(core.EventScore, pts, head)

	if r.levelDone(out) {
		events.Add(core.EventLevelCleared, out.Level+1, head)
		if r.Mode == ModeCampaign && out.Level >= len(r.Levels)-1 {
			out.Won = true
			out.HasFood = false
			events.Add(core.EventWin, 0, head)
			return out, events
		}
		out.Level++
		r.loadLevel(&out, rng)
		return out, events
	}

	r.spawnFood(&out, rng)
	if !out.HasFood {
		out.Won = true
		events.Add(core.EventWin, 0, head)
	}
	return out, events
}

// levelDone reports whether the food target of the current level is met.
func (r Rules) levelDone(s State) bool {
	if r.Mode == ModeEndless {
		return s.FoodEaten >= endlessFoodPerLevel
	}
	target := r.level(s.Level).TargetFood
	return len(r.Levels) > 0 && target > 0 && s.FoodEaten >= target
}

// Hash digests walls, body, food and counters.
func (r Rules) Hash(s State) uint64 {
	h := s.Board.Hash()
	mix := func(v int) { h = h*1099511628211 + uint64(v) }
	for _, p := range s.Body {
		mix(p.Row)
		mix(p.Col)
	}
	mix(int(s.Dir))
	mix(s.Food.Row)
	mix(s.Food.Col)
	mix(int(s.FoodKind))
	mix(s.Level)
	mix(s.FoodEaten)
	mix(s.Score)
	return h
}
