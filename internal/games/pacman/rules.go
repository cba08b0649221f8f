package pacman

import (
	"slices"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// Ghost is one wandering ghost.
type Ghost struct {
	Pos  grid.Coord
	Dir  grid.Dir
	Home grid.Coord
}

// State is one Pac-Man position.
type State struct {
	Cells    *grid.Grid[Cell]
	Pac      grid.Coord
	Dir      grid.Dir
	Ghosts   []Ghost
	Lives    int
	Score    int
	DotsLeft int
	Steps    int // Pac-Man move ticks so far, drives the ghost cadence
	Won      bool
	Lost     bool
}

// Over reports whether the game has ended.
func (s State) Over() bool { return s.Won || s.Lost }

// Rules implements engine.Rules for Pac-Man.
type Rules struct {
	Maze       Maze
	DotPoints  int
	Lives      int
	Ghosts     bool
	GhostEvery int
}

var _ engine.Rules[State, core.Action] = Rules{}

// NewRules builds rules from configuration.
func NewRules(cfg config.PacmanConfig) (Rules, error) {
	maze, err := ParseMaze(cfg.Maze)
	if err != nil {
		return Rules{}, err
	}
	r := Rules{
		Maze:       maze,
		DotPoints:  cfg.DotPoints,
		Lives:      cfg.Lives,
		Ghosts:     cfg.Ghosts.Enabled,
		GhostEvery: cfg.Ghosts.MoveEvery,
	}
	if r.DotPoints <= 0 {
		r.DotPoints = 10
	}
	if r.Lives <= 0 {
		r.Lives = 3
	}
	if r.GhostEvery <= 0 {
		r.GhostEvery = 1
	}
	return r, nil
}

// Init places Pac-Man and the ghosts on their start squares.
func (r Rules) Init(core.RNG) State {
	cells := r.Maze.Cells.Clone()
	s := State{
		Cells:    cells,
		Pac:      r.Maze.Start,
		Lives:    r.Lives,
		DotsLeft: cells.Count(func(c Cell) bool { return c == CellDot }),
	}
	if r.Ghosts {
		for _, p := range r.Maze.Ghosts {
			s.Ghosts = append(s.Ghosts, Ghost{Pos: p, Home: p})
		}
	}
	return s
}

// Apply runs one move tick. A directional action turns Pac-Man first;
// ActionNone keeps the current heading. Other actions are ignored.
func (r Rules) Apply(s State, a core.Action, rng core.RNG) (State, core.Events) {
	if s.Over() {
		return s, nil
	}
	if d, ok := a.Dir(); ok {
		s.Dir = d
	} else if a != core.ActionNone {
		return s, nil
	}

	var events core.Events
	s.Steps++

	if to := s.Pac.Step(s.Dir); s.Dir != grid.DirNone && open(s.Cells, to) {
		s.Pac = to
		if s.Cells.At(to) == CellDot {
			s = r.eat(s, &events)
			if s.Won {
				return s, events
			}
		}
	}

	if r.caught(s) {
		return r.loseLife(s, &events), events
	}

	if len(s.Ghosts) > 0 && s.Steps%r.GhostEvery == 0 {
		s.Ghosts = moveGhosts(s.Cells, s.Ghosts, rng)
		if r.caught(s) {
			return r.loseLife(s, &events), events
		}
	}
	return s, events
}

// Hash digests the maze, the actors and the counters.
func (r Rules) Hash(s State) uint64 {
	h := s.Cells.Hash()
	mix := func(v int) { h = h*31 + uint64(v) }
	mix(s.Pac.Row)
	mix(s.Pac.Col)
	mix(int(s.Dir))
	for _, g := range s.Ghosts {
		mix(g.Pos.Row)
		mix(g.Pos.Col)
		mix(int(g.Dir))
	}
	mix(s.Lives)
	mix(s.Score)
	mix(s.Steps)
	return h
}

func (r Rules) eat(s State, events *core.Events) State {
	cells := s.Cells.Clone()
	cells.Put(s.Pac, CellPath)
	s.Cells = cells
	s.DotsLeft--
	s.Score += r.DotPoints
	events.Add(core.EventDotEaten, r.DotPoints, s.Pac)
	events.Add(core.EventScore, r.DotPoints, s.Pac)

	if s.DotsLeft == 0 {
		s.Won = true
		events.Add(core.EventWin, 0, s.Pac)
	}
	return s
}

func (r Rules) caught(s State) bool {
	for _, g := range s.Ghosts {
		if g.Pos == s.Pac {
			return true
		}
	}
	return false
}

// loseLife takes a life and sends everyone back to their start squares.
// Eaten dots stay eaten.
func (r Rules) loseLife(s State, events *core.Events) State {
	events.Add(core.EventCollision, 0, s.Pac)
	s.Lives--
	events.Add(core.EventLifeLost, s.Lives, s.Pac)
	if s.Lives <= 0 {
		s.Lost = true
		events.Add(core.EventLoss, 0, s.Pac)
		return s
	}

	s.Pac = r.Maze.Start
	s.Dir = grid.DirNone
	ghosts := slices.Clone(s.Ghosts)
	for i := range ghosts {
		ghosts[i].Pos = ghosts[i].Home
		ghosts[i].Dir = grid.DirNone
	}
	s.Ghosts = ghosts
	return s
}

// moveGhosts steps every ghost one cell. A ghost picks at random among the
// open directions that do not turn it around, and reverses only at a dead
// end.
func moveGhosts(cells *grid.Grid[Cell], ghosts []Ghost, rng core.RNG) []Ghost {
	out := slices.Clone(ghosts)
	for i := range out {
		g := &out[i]
		var options []grid.Dir
		for _, d := range grid.Dirs {
			if d != g.Dir.Opposite() && open(cells, g.Pos.Step(d)) {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			back := g.Dir.Opposite()
			if back == grid.DirNone || !open(cells, g.Pos.Step(back)) {
				continue
			}
			options = append(options, back)
		}
		g.Dir = core.Pick(rng, options)
		g.Pos = g.Pos.Step(g.Dir)
	}
	return out
}
