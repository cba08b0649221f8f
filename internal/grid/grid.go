// Package grid provides the fixed-size cell board shared by every game.
// A Grid owns no behavior: rule engines read and write cells, renderers
// read them, and nothing else touches them.
package grid

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Grid is a rectangular board of integer cell values stored in row-major
// order (index = row*cols + col). Reads outside the board return the
// sentinel chosen at construction; writes outside the board are ignored.
type Grid[C constraints.Integer] struct {
	rows     int
	cols     int
	sentinel C
	cells    []C
}

// New creates a rows x cols grid with every cell set to zero.
// Out-of-bounds reads will return sentinel.
func New[C constraints.Integer](rows, cols int, sentinel C) *Grid[C] {
	rows = max(rows, 0)
	cols = max(cols, 0)
	return &Grid[C]{
		rows:     rows,
		cols:     cols,
		sentinel: sentinel,
		cells:    make([]C, rows*cols),
	}
}

// FromRows builds a grid from a slice of equally sized rows.
// Short rows are padded with zero.
func FromRows[C constraints.Integer](rows [][]C, sentinel C) *Grid[C] {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	g := New(len(rows), cols, sentinel)
	for r, row := range rows {
		copy(g.cells[r*cols:], row)
	}
	return g
}

// Dims returns the number of rows and columns.
func (g *Grid[C]) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// Rows returns the number of rows.
func (g *Grid[C]) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid[C]) Cols() int { return g.cols }

// Sentinel returns the value reported for out-of-bounds reads.
func (g *Grid[C]) Sentinel() C { return g.sentinel }

// InBounds reports whether (row, col) lies on the board.
func (g *Grid[C]) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains reports whether p lies on the board.
func (g *Grid[C]) Contains(p Coord) bool {
	return g.InBounds(p.Row, p.Col)
}

// Get returns the cell at (row, col), or the sentinel when out of bounds.
func (g *Grid[C]) Get(row, col int) C {
	if !g.InBounds(row, col) {
		return g.sentinel
	}
	return g.cells[row*g.cols+col]
}

// At returns the cell at p, or the sentinel when out of bounds.
func (g *Grid[C]) At(p Coord) C {
	return g.Get(p.Row, p.Col)
}

// Set stores v at (row, col). Out-of-bounds writes are a no-op.
func (g *Grid[C]) Set(row, col int, v C) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row*g.cols+col] = v
}

// Put stores v at p. Out-of-bounds writes are a no-op.
func (g *Grid[C]) Put(p Coord, v C) {
	g.Set(p.Row, p.Col, v)
}

// Fill sets every cell to v.
func (g *Grid[C]) Fill(v C) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Row returns a copy of the given row, or nil when out of range.
func (g *Grid[C]) Row(row int) []C {
	if row < 0 || row >= g.rows {
		return nil
	}
	out := make([]C, g.cols)
	copy(out, g.cells[row*g.cols:(row+1)*g.cols])
	return out
}

// SetRow overwrites a row with vals. Extra values are dropped and missing
// values leave the remaining cells untouched.
func (g *Grid[C]) SetRow(row int, vals []C) {
	if row < 0 || row >= g.rows {
		return
	}
	copy(g.cells[row*g.cols:(row+1)*g.cols], vals)
}

// Col returns a copy of the given column, or nil when out of range.
func (g *Grid[C]) Col(col int) []C {
	if col < 0 || col >= g.cols {
		return nil
	}
	out := make([]C, g.rows)
	for r := range g.rows {
		out[r] = g.cells[r*g.cols+col]
	}
	return out
}

// SetCol overwrites a column with vals.
func (g *Grid[C]) SetCol(col int, vals []C) {
	if col < 0 || col >= g.cols {
		return
	}
	for r := 0; r < g.rows && r < len(vals); r++ {
		g.cells[r*g.cols+col] = vals[r]
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid[C]) Each(fn func(p Coord, v C)) {
	for i, v := range g.cells {
		fn(Coord{Row: i / g.cols, Col: i % g.cols}, v)
	}
}

// Find returns the coordinates of every cell matching pred, in row-major order.
func (g *Grid[C]) Find(pred func(C) bool) []Coord {
	var out []Coord
	for i, v := range g.cells {
		if pred(v) {
			out = append(out, Coord{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}

// Count returns the number of cells matching pred.
func (g *Grid[C]) Count(pred func(C) bool) int {
	n := 0
	for _, v := range g.cells {
		if pred(v) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid[C]) Clone() *Grid[C] {
	cells := make([]C, len(g.cells))
	copy(cells, g.cells)
	return &Grid[C]{
		rows:     g.rows,
		cols:     g.cols,
		sentinel: g.sentinel,
		cells:    cells,
	}
}

// Equal returns true if both grids have the same dimensions and contents.
func (g *Grid[C]) Equal(other *Grid[C]) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, v := range g.cells {
		if v != other.cells[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a digest of the dimensions and every cell.
// Two grids with equal contents always hash the same.
func (g *Grid[C]) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(g.rows))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(g.cols))
	h.Write(buf[:])
	for _, v := range g.cells {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// String renders the grid as space separated rows, one per line.
func (g *Grid[C]) String() string {
	var b strings.Builder
	for r := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range g.cols {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", g.cells[r*g.cols+c])
		}
	}
	return b.String()
}
