package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/jordan-pw/minesweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("invalid argument")
)

type Kind uint8

const (
	Get Kind = iota
	Open
	Flag
)

var kindNames = [...]string{Get: "g", Open: "o", Flag: "f"}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
}

type Command struct {
	Kind Kind
	X, Y int
}

func (c Command) String() string {
	if c.Kind == Get {
		return kindNames[Get]
	}
	return fmt.Sprintf("%s %d %d", kindNames[c.Kind], c.X, c.Y)
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadArgument)
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadArgument)
		return
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %q takes %d, got %d", ErrArgCount, parts[0], nargs, len(parts)-1,
		)
	}
	switch parts[0] {
	case "o", "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		kind := Open
		if parts[0] == "f" {
			kind = Flag
		}
		return Command{Kind: kind, X: x, Y: y}, nil
	default:
		return Command{Kind: Get}, nil
	}
}

// Apply executes c on g. Engine errors are returned as is.
func (c Command) Apply(g *mines.Game) (err error) {
	switch c.Kind {
	case Open:
		_, err = g.Reveal(c.X, c.Y)
	case Flag:
		_, err = g.ToggleFlag(c.X, c.Y)
	}
	return
}

// Lines yields the 1-based number and content of every line in s.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 1
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, strings.TrimSuffix(piece, "\r")) {
				return
			}
			i += 1
		}
	}
}

type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func (e *LineError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Line  int    `json:"line"`
		Error string `json:"error"`
	}{e.Line, e.Err.Error()})
}

// Run executes script on g line by line. Blank lines and lines starting
// with '#' are skipped. Execution stops at the first failing line or once
// a command ends the game. On failure g may be partially modified; callers that
// need atomicity run scripts on a clone.
func Run(g *mines.Game, script string) (executed int, err error) {
	for n, line := range Lines(script) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return executed, &LineError{Line: n, Err: err}
		}
		if err := c.Apply(g); err != nil {
			return executed, &LineError{Line: n, Err: err}
		}
		executed++
		if g.Phase().Terminal() {
			break
		}
	}
	return executed, nil
}
