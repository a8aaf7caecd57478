package mines

import "fmt"

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Validate reports ErrInvalidConfiguration unless both dimensions are
// positive and 0 <= MineCount < Width*Height.
func (p GameParams) Validate() error {
	w, h, mc := p.Unpack()
	switch {
	case w <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfiguration, w)
	case h <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfiguration, h)
	case mc < 0 || mc >= w*h:
		return fmt.Errorf(
			"%w: mine count must be in [0, %d), got %d",
			ErrInvalidConfiguration, w*h, mc,
		)
	}
	return nil
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

type Point struct {
	X, Y int
}
