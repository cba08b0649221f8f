package t2048

import "github.com/vovakirdan/grid-arcade/internal/grid"

// DefaultBoardSize is used when the configuration does not name a size.
const DefaultBoardSize = 4

// Board is an N x N grid of tile values. Zero is an empty cell.
type Board = *grid.Grid[int]

// NewBoard returns an empty size x size board.
func NewBoard(size int) Board {
	return grid.New(size, size, -1)
}

// BoardFromRows builds a board from literal rows, mostly for tests.
func BoardFromRows(rows [][]int) Board {
	return grid.FromRows(rows, -1)
}

// slideLine slides and merges a single line toward index 0.
// A tile produced by a merge cannot merge again in the same move.
// Returns the new line, the score gained and the indexes that merged.
func slideLine(line []int) (result []int, score int, merged []int) {
	result = make([]int, len(line))
	writePos := 0
	canMerge := false

	for _, v := range line {
		if v == 0 {
			continue
		}

		if canMerge && result[writePos-1] == v {
			// Merge with previous tile
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = append(merged, writePos-1)
			canMerge = false
			continue
		}

		// Move tile
		result[writePos] = v
		writePos++
		canMerge = true
	}

	return result, score, merged
}

// lineCoords lists the cells of line i, starting at the edge tiles move toward.
func lineCoords(size int, dir grid.Dir, i int) []grid.Coord {
	coords := make([]grid.Coord, size)
	for k := range size {
		switch dir {
		case grid.DirLeft:
			coords[k] = grid.At(i, k)
		case grid.DirRight:
			coords[k] = grid.At(i, size-1-k)
		case grid.DirUp:
			coords[k] = grid.At(k, i)
		case grid.DirDown:
			coords[k] = grid.At(size-1-k, i)
		}
	}
	return coords
}

// MoveResult describes one slide of the whole board.
type MoveResult struct {
	Board   Board
	Score   int
	Changed bool
	Merges  []grid.Coord // cells holding a freshly merged tile
}

// Slide performs a move in the given direction without touching board.
func Slide(board Board, dir grid.Dir) MoveResult {
	size := board.Rows()
	res := MoveResult{Board: board.Clone()}
	if dir == grid.DirNone {
		return res
	}

	for i := range size {
		coords := lineCoords(size, dir, i)
		line := make([]int, size)
		for k, p := range coords {
			line[k] = board.At(p)
		}

		newLine, score, merged := slideLine(line)
		res.Score += score
		for k, p := range coords {
			if newLine[k] != line[k] {
				res.Changed = true
			}
			res.Board.Put(p, newLine[k])
		}
		for _, k := range merged {
			res.Merges = append(res.Merges, coords[k])
		}
	}

	return res
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []grid.Coord {
	return board.Find(func(v int) bool { return v == 0 })
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	return board.Count(func(v int) bool { return v == 0 }) > 0
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	rows, cols := board.Dims()
	for r := range rows {
		for c := range cols {
			val := board.Get(r, c)
			if val == 0 {
				continue
			}
			// Right and bottom neighbors; the sentinel never matches a tile.
			if board.Get(r, c+1) == val || board.Get(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	board.Each(func(_ grid.Coord, v int) {
		maxVal = max(maxVal, v)
	})
	return maxVal
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}
