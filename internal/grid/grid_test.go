package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wall int8 = -1

func TestGridSetGet(t *testing.T) {
	g := New[int8](3, 4, wall)

	rows, cols := g.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 4, cols)

	g.Set(1, 2, 7)
	assert.Equal(t, int8(7), g.Get(1, 2))
	assert.Equal(t, int8(7), g.At(At(1, 2)))
	assert.Equal(t, int8(0), g.Get(0, 0))
}

func TestGridOutOfBounds(t *testing.T) {
	g := New[int8](2, 2, wall)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past end", 2, 0},
		{"col past end", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, wall, g.Get(tt.row, tt.col), "out-of-bounds read should return sentinel")
			assert.False(t, g.InBounds(tt.row, tt.col))

			before := g.Clone()
			g.Set(tt.row, tt.col, 5)
			assert.True(t, g.Equal(before), "out-of-bounds write should be a no-op")
		})
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := New[int](2, 2, 0)
	g.Set(0, 0, 1)

	c := g.Clone()
	c.Set(0, 0, 9)

	assert.Equal(t, 1, g.Get(0, 0))
	assert.Equal(t, 9, c.Get(0, 0))
	assert.False(t, g.Equal(c))
}

func TestGridRowsAndCols(t *testing.T) {
	g := FromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
	}, 0)

	assert.Equal(t, []int{4, 5, 6}, g.Row(1))
	assert.Equal(t, []int{2, 5}, g.Col(1))
	assert.Nil(t, g.Row(5))

	g.SetRow(0, []int{7, 8, 9})
	assert.Equal(t, []int{7, 8, 9}, g.Row(0))

	g.SetCol(2, []int{0, 0})
	assert.Equal(t, []int{0, 0}, g.Col(2))
}

func TestGridFindAndCount(t *testing.T) {
	g := FromRows([][]uint8{
		{0, 1, 0},
		{1, 0, 1},
	}, 0)

	ones := func(v uint8) bool { return v == 1 }
	assert.Equal(t, 3, g.Count(ones))
	assert.Equal(t, []Coord{At(0, 1), At(1, 0), At(1, 2)}, g.Find(ones))
}

func TestGridHash(t *testing.T) {
	a := New[int](4, 4, 0)
	b := New[int](4, 4, 0)
	require.Equal(t, a.Hash(), b.Hash())

	a.Set(3, 3, 2048)
	assert.NotEqual(t, a.Hash(), b.Hash())

	b.Set(3, 3, 2048)
	assert.Equal(t, a.Hash(), b.Hash())

	// Same cell count, different shape.
	assert.NotEqual(t, New[int](2, 8, 0).Hash(), New[int](8, 2, 0).Hash())
}

func TestDirOpposite(t *testing.T) {
	for _, d := range Dirs {
		assert.Equal(t, d, d.Opposite().Opposite())
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		assert.Equal(t, 0, dr+or)
		assert.Equal(t, 0, dc+oc)
	}
	assert.Equal(t, At(2, 3), At(3, 3).Step(DirUp))
	assert.Equal(t, 5, At(0, 0).Manhattan(At(2, 3)))
}
