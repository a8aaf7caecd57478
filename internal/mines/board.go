package mines

type Cell struct {
	IsMine        bool
	IsRevealed    bool
	IsFlagged     bool
	AdjacentMines int
}

// Board is a width*height arena of cells addressed by y*Width+x. Every cell
// is its own value; there is no row sharing.
type Board struct {
	Width, Height int
	cells         []Cell
}

// NewBoard returns a board with every cell in its default state.
func NewBoard(width, height int) Board {
	return Board{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

func (b Board) index(x, y int) int {
	return y*b.Width + x
}

// At returns a copy of the cell at x:y. It panics if x:y is out of bounds.
func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{Width: b.Width, Height: b.Height, cells: cells}
}

func (b Board) Mines() (count int) {
	for _, c := range b.cells {
		if c.IsMine {
			count++
		}
	}
	return
}

func (b Board) Flags() (count int) {
	for _, c := range b.cells {
		if c.IsFlagged {
			count++
		}
	}
	return
}

// countAdjacent counts mines in the Moore neighborhood of x:y. Neighbors
// outside the board are skipped.
func (b Board) countAdjacent(x, y int) int {
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) && b.cells[b.index(x+dx, y+dy)].IsMine {
				n++
			}
		}
	}
	return n
}

func (b *Board) fillAdjacent() {
	for y := range b.Height {
		for x := range b.Width {
			b.cells[b.index(x, y)].AdjacentMines = b.countAdjacent(x, y)
		}
	}
}

func (b Board) IsFillable(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	c := b.cells[b.index(x, y)]
	return !c.IsMine && !c.IsRevealed
}

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}

// FloodFill reveals x:y and, through cells with no adjacent mines, the
// orthogonally connected region around it. Revealed cells lose their flag.
// Cells are queued at the moment they are revealed, so each one is visited
// once and the work-list never outgrows the board.
func (b *Board) FloodFill(x, y int) {
	if !b.IsFillable(x, y) {
		return
	}

	std := newCellTodo(len(b.cells))
	b.open(b.index(x, y), std)

	for !std.empty() {
		i := std.pop()
		if b.cells[i].AdjacentMines != 0 {
			continue
		}
		cx, cy := i%b.Width, i/b.Width
		for _, d := range orthogonal {
			nx, ny := cx+d[0], cy+d[1]
			if b.IsFillable(nx, ny) {
				b.open(b.index(nx, ny), std)
			}
		}
	}
}

func (b *Board) open(i int, std *celltodo) {
	b.cells[i].IsRevealed = true
	b.cells[i].IsFlagged = false
	std.add(i)
}

// CheckWin reports whether the flagged cells are exactly the mined cells.
// Reveal state does not matter.
func (b Board) CheckWin() bool {
	for _, c := range b.cells {
		if c.IsMine != c.IsFlagged {
			return false
		}
	}
	return true
}

func (b *Board) RevealAll() {
	for i := range b.cells {
		b.cells[i].IsRevealed = true
	}
}
