package mines

import (
	"strconv"
	"strings"
)

// CellView is what a renderer may know about a cell. IsMine is nil while
// the cell is hidden and the game is not lost; AdjacentMines is zero for
// hidden cells.
type CellView struct {
	IsMine        *bool `json:"is_mine,omitempty"`
	IsRevealed    bool  `json:"is_revealed"`
	IsFlagged     bool  `json:"is_flagged"`
	AdjacentMines int   `json:"adjacent_mines"`
}

func (v CellView) String() string {
	switch {
	case v.IsRevealed && v.IsMine != nil && *v.IsMine:
		return "*"
	case v.IsRevealed && v.AdjacentMines == 0:
		return "."
	case v.IsRevealed:
		return strconv.Itoa(v.AdjacentMines)
	case v.IsFlagged:
		return "F"
	default:
		return "-"
	}
}

type Snapshot struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	MineCount int        `json:"mine_count"`
	Phase     Phase      `json:"phase"`
	Moves     int        `json:"moves"`
	Flags     int        `json:"flags"`
	Cells     []CellView `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Width:     g.params.Width,
		Height:    g.params.Height,
		MineCount: g.params.MineCount,
		Phase:     g.phase,
		Moves:     g.moves,
		Cells:     make([]CellView, len(g.board.cells)),
	}
	for i, c := range g.board.cells {
		v := CellView{IsRevealed: c.IsRevealed, IsFlagged: c.IsFlagged}
		if c.IsRevealed || g.phase == Lost {
			isMine := c.IsMine
			v.IsMine = &isMine
		}
		if c.IsRevealed {
			v.AdjacentMines = c.AdjacentMines
		}
		if c.IsFlagged {
			s.Flags++
		}
		s.Cells[i] = v
	}
	return s
}

func (s Snapshot) At(x, y int) CellView {
	return s.Cells[y*s.Width+x]
}

func (s Snapshot) String() string {
	var b strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s.At(x, y).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
