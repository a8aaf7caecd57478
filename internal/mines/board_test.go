package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardWithMines lays mines on points without any safe cell.
func boardWithMines(w, h int, points ...Point) Board {
	return FixedPlacer(points...).Place(NewBoard(w, h), len(points), -1, -1)
}

func revealed(b Board) (count int) {
	for _, c := range b.cells {
		if c.IsRevealed {
			count++
		}
	}
	return
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(4, 3)
	require.Len(t, b.cells, 12)
	for _, c := range b.cells {
		assert.Equal(t, Cell{}, c)
	}

	b.cells[b.index(2, 1)].IsFlagged = true
	assert.Equal(t, 1, b.Flags(), "cells must not alias each other")
	assert.False(t, b.At(2, 0).IsFlagged)
	assert.False(t, b.At(2, 2).IsFlagged)
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(2, 2)
	c := b.Clone()
	c.cells[0].IsMine = true
	assert.False(t, b.At(0, 0).IsMine)
}

func TestAdjacentMines(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		mines []Point
		want  [][]int
	}{
		{
			name:  "3x3 center",
			w:     3,
			h:     3,
			mines: []Point{{1, 1}},
			want: [][]int{
				{1, 1, 1},
				{1, 0, 1},
				{1, 1, 1},
			},
		},
		{
			name:  "3x3 corners",
			w:     3,
			h:     3,
			mines: []Point{{0, 0}, {2, 2}},
			want: [][]int{
				{0, 1, 0},
				{1, 2, 1},
				{0, 1, 0},
			},
		},
		{
			name:  "5x5 mixed",
			w:     5,
			h:     5,
			mines: []Point{{0, 0}, {1, 0}, {4, 1}, {2, 2}, {0, 4}, {4, 4}},
			want: [][]int{
				{1, 1, 1, 1, 1},
				{2, 3, 2, 2, 0},
				{0, 1, 0, 2, 1},
				{1, 2, 1, 2, 1},
				{0, 1, 0, 1, 0},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := boardWithMines(test.w, test.h, test.mines...)
			for y := range test.h {
				for x := range test.w {
					assert.Equal(t, test.want[y][x], b.At(x, y).AdjacentMines, "%d:%d", x, y)
					assert.Equal(t, naiveAdjacent(b, x, y), b.At(x, y).AdjacentMines, "%d:%d", x, y)
				}
			}
		})
	}
}

func TestIsFillable(t *testing.T) {
	b := boardWithMines(3, 3, Point{0, 0})
	b.cells[b.index(1, 1)].IsRevealed = true

	assert.False(t, b.IsFillable(-1, 0))
	assert.False(t, b.IsFillable(0, 3))
	assert.False(t, b.IsFillable(0, 0), "mine")
	assert.False(t, b.IsFillable(1, 1), "revealed")
	assert.True(t, b.IsFillable(2, 2))
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	b := boardWithMines(5, 1, Point{2, 0})
	b.FloodFill(0, 0)

	assert.True(t, b.At(0, 0).IsRevealed)
	assert.True(t, b.At(1, 0).IsRevealed)
	assert.False(t, b.At(2, 0).IsRevealed)
	assert.False(t, b.At(3, 0).IsRevealed)
	assert.False(t, b.At(4, 0).IsRevealed)
}

func TestFloodFillOrthogonalOnly(t *testing.T) {
	b := NewBoard(3, 3)
	b.cells[b.index(1, 0)].IsRevealed = true
	b.cells[b.index(0, 1)].IsRevealed = true

	b.FloodFill(0, 0)

	assert.True(t, b.At(0, 0).IsRevealed)
	assert.False(t, b.At(1, 1).IsRevealed, "diagonal neighbor must not be filled")
	assert.Equal(t, 3, revealed(b))
}

func TestFloodFillRegion(t *testing.T) {
	b := boardWithMines(3, 3, Point{2, 2})
	b.FloodFill(0, 0)

	assert.Equal(t, 8, revealed(b))
	assert.False(t, b.At(2, 2).IsRevealed)
}

func TestFloodFillClearsFlags(t *testing.T) {
	b := NewBoard(3, 1)
	b.cells[b.index(2, 0)].IsFlagged = true

	b.FloodFill(0, 0)

	assert.True(t, b.At(2, 0).IsRevealed)
	assert.False(t, b.At(2, 0).IsFlagged)
	assert.Zero(t, b.Flags())
}

func TestFloodFillNeverRevealsMines(t *testing.T) {
	b := boardWithMines(6, 6, Point{0, 0}, Point{3, 3}, Point{5, 0}, Point{1, 4})
	for y := range 6 {
		for x := range 6 {
			b.FloodFill(x, y)
		}
	}

	for y := range 6 {
		for x := range 6 {
			c := b.At(x, y)
			assert.Equal(t, !c.IsMine, c.IsRevealed, "%d:%d", x, y)
		}
	}
}

func TestFloodFillOnMineIsNoop(t *testing.T) {
	b := boardWithMines(3, 3, Point{1, 1})
	before := b.Clone()
	b.FloodFill(1, 1)
	assert.Equal(t, before, b)
}

func TestFloodFillIdempotent(t *testing.T) {
	once := boardWithMines(8, 8, Point{4, 4}, Point{6, 1})
	twice := once.Clone()

	once.FloodFill(0, 0)
	twice.FloodFill(0, 0)
	twice.FloodFill(0, 0)

	assert.Equal(t, once, twice)
}

func TestFloodFillLargeBoard(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	b := NewBoard(1000, 1000)
	b.FloodFill(500, 500)
	assert.Equal(t, 1000*1000, revealed(b))
}

func TestCheckWin(t *testing.T) {
	b := boardWithMines(3, 3, Point{1, 1})
	assert.False(t, b.CheckWin(), "unflagged mine")

	b.cells[b.index(1, 1)].IsFlagged = true
	assert.True(t, b.CheckWin())

	b.cells[b.index(0, 0)].IsFlagged = true
	assert.False(t, b.CheckWin(), "flagged non-mine")

	b.cells[b.index(0, 0)].IsFlagged = false
	b.RevealAll()
	b.cells[b.index(1, 1)].IsRevealed = false
	assert.True(t, b.CheckWin(), "reveal state does not matter")

	b.cells[b.index(1, 1)].IsFlagged = false
	assert.False(t, b.CheckWin(), "revealing every safe cell is not enough")
}

func TestCheckWinNoMines(t *testing.T) {
	assert.True(t, NewBoard(2, 2).CheckWin())
}

func TestRevealAll(t *testing.T) {
	b := boardWithMines(2, 2, Point{0, 0})
	b.cells[b.index(1, 1)].IsFlagged = true
	b.RevealAll()
	assert.Equal(t, 4, revealed(b))
}
