package pacman

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// fixedRNG makes every ghost take its first option.
type fixedRNG struct{}

func (fixedRNG) IntN(int) int     { return 0 }
func (fixedRNG) Float64() float64 { return 0 }

func defaultRules(t *testing.T) Rules {
	t.Helper()
	cfg, err := config.LoadPacman("")
	require.NoError(t, err)
	r, err := NewRules(cfg)
	require.NoError(t, err)
	return r
}

func rulesFor(t *testing.T, ghosts bool, lives int, maze ...string) Rules {
	t.Helper()
	r, err := NewRules(config.PacmanConfig{
		Maze:      maze,
		DotPoints: 10,
		Lives:     lives,
		Ghosts:    config.PacmanGhosts{Enabled: ghosts, MoveEvery: 1},
	})
	require.NoError(t, err)
	return r
}

func TestParseDefaultMaze(t *testing.T) {
	cfg, err := config.LoadPacman("")
	require.NoError(t, err)

	m, err := ParseMaze(cfg.Maze)
	require.NoError(t, err)

	rows, cols := m.Cells.Dims()
	assert.Equal(t, 11, rows)
	assert.Equal(t, 15, cols)
	assert.Equal(t, grid.At(1, 1), m.Start)
	assert.Len(t, m.Ghosts, 2)

	// Every non-wall square starts with a dot.
	want := 0
	for _, line := range cfg.Maze {
		want += len(line) - strings.Count(line, "#") - strings.Count(line, " ")
	}
	assert.Equal(t, want, m.Cells.Count(func(c Cell) bool { return c == CellDot }))
}

func TestParseMazeErrors(t *testing.T) {
	tests := []struct {
		name string
		maze []string
	}{
		{"empty", nil},
		{"no start", []string{"###", "#.#", "###"}},
		{"two starts", []string{"####", "#PP#", "####"}},
		{"ragged", []string{"####", "#P#", "####"}},
		{"unknown cell", []string{"####", "#Px#", "####"}},
		{"walled in start", []string{"###", "#P#", "###"}},
		{"lone start", []string{"P"}},
		{"unreachable dot", []string{"######", "#P #.#", "######"}},
		{"unreachable ghost", []string{"#####", "#P#G#", "#####"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMaze(tt.maze)
			assert.ErrorIs(t, err, ErrBadMaze)
		})
	}
}

func TestDotlessMazeIsClearable(t *testing.T) {
	// No '.' at all: the start square still carries the only dot
	r := rulesFor(t, false, 3, "####", "#P #", "####")
	s := r.Init(fixedRNG{})
	require.Equal(t, 1, s.DotsLeft)

	s, _ = r.Apply(s, core.ActionRight, fixedRNG{})
	require.False(t, s.Over())
	s, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	assert.True(t, s.Won)
	assert.Zero(t, s.DotsLeft)
	assert.True(t, events.Has(core.EventWin))
}

func TestOutsideMazeIsWall(t *testing.T) {
	m, err := ParseMaze([]string{"P."})
	require.NoError(t, err)
	assert.False(t, open(m.Cells, grid.At(0, -1)))
	assert.False(t, open(m.Cells, grid.At(-1, 0)))
	assert.True(t, open(m.Cells, grid.At(0, 1)))
}

func TestInitialState(t *testing.T) {
	r := defaultRules(t)
	s := r.Init(fixedRNG{})

	assert.Equal(t, grid.At(1, 1), s.Pac)
	assert.Equal(t, grid.DirNone, s.Dir)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, CellDot, s.Cells.At(s.Pac), "start square keeps its dot")
	assert.Len(t, s.Ghosts, 2)
}

func TestNoDirectionStaysPut(t *testing.T) {
	r := rulesFor(t, false, 3, "#####", "#P..#", "#####")
	s := r.Init(fixedRNG{})

	next, events := r.Apply(s, core.ActionNone, fixedRNG{})
	assert.Equal(t, s.Pac, next.Pac)
	assert.Empty(t, events)
}

func TestWallsBlock(t *testing.T) {
	r := defaultRules(t)
	s := r.Init(fixedRNG{})

	for _, a := range []core.Action{core.ActionUp, core.ActionLeft} {
		next, events := r.Apply(s, a, fixedRNG{})
		assert.Equal(t, grid.At(1, 1), next.Pac, "moving %s from the corner", a)
		assert.False(t, events.Has(core.EventDotEaten))
	}
}

func TestEatDot(t *testing.T) {
	r := rulesFor(t, false, 3, "#####", "#P..#", "#####")
	s := r.Init(fixedRNG{})
	dots := s.DotsLeft

	next, events := r.Apply(s, core.ActionRight, fixedRNG{})

	assert.Equal(t, grid.At(1, 2), next.Pac)
	assert.True(t, events.Has(core.EventDotEaten))
	assert.Equal(t, 10, next.Score)
	assert.Equal(t, dots-1, next.DotsLeft)
	assert.Equal(t, CellPath, next.Cells.Get(1, 2))
	assert.Equal(t, CellDot, s.Cells.Get(1, 2), "input state is untouched")

	// Heading persists without input.
	next, _ = r.Apply(next, core.ActionNone, fixedRNG{})
	assert.Equal(t, grid.At(1, 3), next.Pac)
}

func TestNonMoveActionIgnored(t *testing.T) {
	r := rulesFor(t, false, 3, "#####", "#P..#", "#####")
	s := r.Init(fixedRNG{})
	s.Dir = grid.DirRight

	next, events := r.Apply(s, core.ActionSelect, fixedRNG{})
	assert.Nil(t, events)
	assert.Equal(t, s.Pac, next.Pac)
	assert.Equal(t, s.Steps, next.Steps)
}

func TestEatingAllDotsWins(t *testing.T) {
	r := rulesFor(t, false, 3, "#####", "#P..#", "#####")
	s := r.Init(fixedRNG{})
	require.Equal(t, 3, s.DotsLeft)

	var events core.Events
	for _, a := range []core.Action{core.ActionRight, core.ActionRight, core.ActionLeft, core.ActionLeft} {
		s, events = r.Apply(s, a, fixedRNG{})
	}

	assert.True(t, s.Won)
	out, ok := events.Outcome()
	require.True(t, ok)
	assert.Equal(t, core.EventWin, out.Kind)
	assert.Equal(t, 30, s.Score)
}

func TestGhostCostsLife(t *testing.T) {
	r := rulesFor(t, true, 2, "#######", "#P...G#", "#######")
	s := r.Init(fixedRNG{})

	s, _ = r.Apply(s, core.ActionRight, fixedRNG{})
	require.Equal(t, grid.At(1, 2), s.Pac)
	require.Equal(t, grid.At(1, 4), s.Ghosts[0].Pos)

	s, events := r.Apply(s, core.ActionNone, fixedRNG{})
	require.True(t, events.Has(core.EventLifeLost))
	assert.Equal(t, 1, s.Lives)
	assert.False(t, s.Lost)
	assert.Equal(t, grid.At(1, 1), s.Pac, "Pac-Man returns to start")
	assert.Equal(t, grid.At(1, 5), s.Ghosts[0].Pos, "ghost returns home")
	assert.Equal(t, grid.DirNone, s.Dir)

	s, _ = r.Apply(s, core.ActionRight, fixedRNG{})
	s, events = r.Apply(s, core.ActionNone, fixedRNG{})
	assert.True(t, s.Lost)
	out, ok := events.Outcome()
	require.True(t, ok)
	assert.Equal(t, core.EventLoss, out.Kind)
}

func TestWalkingIntoGhost(t *testing.T) {
	r := rulesFor(t, true, 3, "#####", "#PG.#", "#####")
	s := r.Init(fixedRNG{})

	s, events := r.Apply(s, core.ActionRight, fixedRNG{})
	assert.True(t, events.Has(core.EventLifeLost))
	assert.Equal(t, 2, s.Lives)
	assert.Equal(t, grid.At(1, 1), s.Pac)
}

func TestGhostsDoNotReverse(t *testing.T) {
	cells := grid.FromRows([][]Cell{
		{2, 2, 2, 2, 2},
		{2, 0, 0, 0, 2},
		{2, 2, 2, 2, 2},
	}, CellWall)
	ghosts := []Ghost{{Pos: grid.At(1, 2), Dir: grid.DirRight}}

	moved := moveGhosts(cells, ghosts, fixedRNG{})
	assert.Equal(t, grid.At(1, 3), moved[0].Pos)
	assert.Equal(t, grid.At(1, 2), ghosts[0].Pos, "input slice is untouched")

	// Dead end: the only way out is back.
	moved = moveGhosts(cells, moved, fixedRNG{})
	assert.Equal(t, grid.At(1, 2), moved[0].Pos)
	assert.Equal(t, grid.DirLeft, moved[0].Dir)
}

func TestDeterminism(t *testing.T) {
	r := defaultRules(t)
	actions := []core.Action{
		core.ActionRight, core.ActionNone, core.ActionNone, core.ActionDown,
		core.ActionNone, core.ActionNone, core.ActionRight, core.ActionNone,
	}

	a := engine.NewSession[State, core.Action](r, 5)
	b := engine.NewSession[State, core.Action](r, 5)
	for range 10 {
		for _, act := range actions {
			a.Apply(act)
			b.Apply(act)
		}
	}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.State().Ghosts, b.State().Ghosts)
}

func TestAdapterMoveInterval(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	require.False(t, g.tooSmall)

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)

	interval := g.moveEveryTicks()
	for range interval - 1 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, grid.At(1, 2), g.session.State().Pac)
	assert.Equal(t, 10, g.State().Score)
}

func TestAdapterBadConfigFallsBack(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, ConfigPath: "/nonexistent/pacman.yaml"})

	rows, cols := g.rules.Maze.Cells.Dims()
	assert.Equal(t, 11, rows)
	assert.Equal(t, 15, cols)
}

func TestReplayRoundTrip(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24})

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	for range 200 {
		g.Step(in)
	}

	rec, ok := g.Recording()
	require.True(t, ok)
	require.NoError(t, New().Verify(context.Background(), rec, engine.ReplayOptions{}))

	rec.FinalHash ^= 1
	assert.ErrorIs(t, New().Verify(context.Background(), rec, engine.ReplayOptions{}), engine.ErrReplayMismatch)
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Pac-Man | Score: 0")
	assert.Contains(t, out, "C")
	assert.Contains(t, out, "M")
}
