package mines

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfBounds          = errors.New("cell position out of bounds")
	ErrTerminalPhase        = errors.New("game is over")
	ErrNotStarted           = errors.New("game has not started")
)
