package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Phase uint8

const (
	NotStarted Phase = iota
	InProgress
	Won
	Lost
)

var phaseNames = [...]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Won:        "won",
	Lost:       "lost",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("unknown phase %d", p)
	}
	return []byte(phaseNames[p]), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Game is a single play-through on a fixed configuration. It is not safe
// for concurrent use.
type Game struct {
	params GameParams
	board  Board
	phase  Phase
	moves  int
	placer Placer
}

// NewGame validates params and returns a game with an empty board. Mines
// are laid out by placer on the first reveal; a nil placer means
// RandomPlacer(NewSource()).
func NewGame(params GameParams, placer Placer) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		placer = RandomPlacer(NewSource())
	}
	g := &Game{
		params: params,
		board:  NewBoard(params.Width, params.Height),
		placer: placer,
	}
	return g, nil
}

func (g *Game) Params() GameParams { return g.params }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Moves() int         { return g.moves }

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board.Clone() }

// Configure throws the current board away and starts over on params.
func (g *Game) Configure(params GameParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	g.params = params
	g.board = NewBoard(params.Width, params.Height)
	g.phase = NotStarted
	g.moves = 0
	return nil
}

// Clone returns a deep copy of g. A stateful placer is copied too, so
// whatever the clone draws leaves g's next layout unchanged.
func (g *Game) Clone() *Game {
	clone := *g
	clone.board = g.board.Clone()
	if c, ok := g.placer.(placerCloner); ok {
		clone.placer = c.clonePlacer()
	}
	return &clone
}

func (g *Game) checkMove(x, y int) error {
	if g.phase.Terminal() {
		return fmt.Errorf("%w: game is %s", ErrTerminalPhase, g.phase)
	}
	if !g.board.InBounds(x, y) {
		return fmt.Errorf(
			"%w: %d:%d is outside %dx%d",
			ErrOutOfBounds, x, y, g.board.Width, g.board.Height,
		)
	}
	return nil
}

// Reveal opens x:y. The first reveal lays out the mines around a safe x:y.
// Revealing a mine exposes the whole board and loses the game.
func (g *Game) Reveal(x, y int) (Snapshot, error) {
	if err := g.checkMove(x, y); err != nil {
		return g.Snapshot(), err
	}

	switch g.phase {
	case NotStarted:
		g.board = g.placer.Place(g.board, g.params.MineCount, x, y)
		g.board.FloodFill(x, y)
		g.phase = InProgress
	case InProgress:
		if g.board.At(x, y).IsMine {
			g.board.RevealAll()
			g.phase = Lost
			Log.WithFields(logrus.Fields{
				"params": g.params.String(),
				"cell":   Point{x, y},
				"moves":  g.moves + 1,
			}).Debug("mine revealed")
		} else {
			g.board.FloodFill(x, y)
			g.checkWin()
		}
	}

	g.moves++
	return g.Snapshot(), nil
}

// ToggleFlag flips the flag on an unrevealed x:y. Flagging a revealed cell
// is accepted and changes nothing but the move count.
func (g *Game) ToggleFlag(x, y int) (Snapshot, error) {
	if g.phase == NotStarted {
		return g.Snapshot(), fmt.Errorf("%w: first move must be a reveal", ErrNotStarted)
	}
	if err := g.checkMove(x, y); err != nil {
		return g.Snapshot(), err
	}

	c := &g.board.cells[g.board.index(x, y)]
	if !c.IsRevealed {
		c.IsFlagged = !c.IsFlagged
	}

	g.moves++
	g.checkWin()
	return g.Snapshot(), nil
}

func (g *Game) checkWin() {
	if !g.board.CheckWin() {
		return
	}
	g.phase = Won
	Log.WithFields(logrus.Fields{
		"params": g.params.String(),
		"moves":  g.moves,
	}).Debug("game won")
}
