// Package pacman implements a single-maze Pac-Man with wandering ghosts.
package pacman

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// ErrBadMaze is returned when a maze layout cannot be used.
var ErrBadMaze = errors.New("pacman: bad maze")

// Cell is one maze square.
type Cell uint8

const (
	CellPath Cell = iota
	CellDot
	CellWall
)

// Maze is a parsed layout: the cells plus the start squares.
type Maze struct {
	Cells  *grid.Grid[Cell]
	Start  grid.Coord
	Ghosts []grid.Coord
}

// ParseMaze reads a layout where '#' is a wall, '.' a dot, ' ' an empty
// path, 'P' the Pac-Man start and 'G' a ghost start. Start squares carry
// a dot. Everything outside the layout counts as wall. A layout is
// rejected unless Pac-Man can reach every dot, his own start square
// included.
func ParseMaze(lines []string) (Maze, error) {
	if len(lines) == 0 {
		return Maze{}, fmt.Errorf("%w: empty layout", ErrBadMaze)
	}
	cols := len(lines[0])
	cells := grid.New(len(lines), cols, CellWall)

	m := Maze{Cells: cells, Start: grid.At(-1, -1)}
	for r, line := range lines {
		if len(line) != cols {
			return Maze{}, fmt.Errorf("%w: row %d is %d wide, want %d", ErrBadMaze, r, len(line), cols)
		}
		for c, ch := range []byte(line) {
			switch ch {
			case '#':
				cells.Set(r, c, CellWall)
			case '.':
				cells.Set(r, c, CellDot)
			case ' ':
				cells.Set(r, c, CellPath)
			case 'P':
				if m.Start.Row >= 0 {
					return Maze{}, fmt.Errorf("%w: second start at %s", ErrBadMaze, grid.At(r, c))
				}
				m.Start = grid.At(r, c)
				cells.Set(r, c, CellDot)
			case 'G':
				m.Ghosts = append(m.Ghosts, grid.At(r, c))
				cells.Set(r, c, CellDot)
			default:
				return Maze{}, fmt.Errorf("%w: unknown cell %q at %s", ErrBadMaze, ch, grid.At(r, c))
			}
		}
	}
	if m.Start.Row < 0 {
		return Maze{}, fmt.Errorf("%w: no start square", ErrBadMaze)
	}
	if err := checkClearable(m); err != nil {
		return Maze{}, err
	}
	return m, nil
}

// checkClearable fails when a dot lies outside the area Pac-Man can walk.
// The start dot is eaten by stepping back onto it, so Pac-Man also needs
// somewhere to step.
func checkClearable(m Maze) error {
	moves := false
	for _, d := range grid.Dirs {
		if open(m.Cells, m.Start.Step(d)) {
			moves = true
			break
		}
	}
	if !moves {
		return fmt.Errorf("%w: Pac-Man is walled in at %s", ErrBadMaze, m.Start)
	}

	// 1 marks a visited square; out of bounds reads as visited
	seen := grid.New(m.Cells.Rows(), m.Cells.Cols(), uint8(1))
	seen.Put(m.Start, 1)
	stack := []grid.Coord{m.Start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range grid.Dirs {
			n := p.Step(d)
			if seen.At(n) == 1 || !open(m.Cells, n) {
				continue
			}
			seen.Put(n, 1)
			stack = append(stack, n)
		}
	}

	for _, p := range m.Cells.Find(func(c Cell) bool { return c == CellDot }) {
		if seen.At(p) == 0 {
			return fmt.Errorf("%w: dot at %s cannot be reached", ErrBadMaze, p)
		}
	}
	return nil
}

// open reports whether p can be entered.
func open(cells *grid.Grid[Cell], p grid.Coord) bool {
	return cells.At(p) != CellWall
}
