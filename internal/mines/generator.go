package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// Placer lays out mines on an empty board, keeping safeX:safeY clear, and
// returns the populated board with adjacency counts computed.
type Placer interface {
	Place(b Board, numMines, safeX, safeY int) Board
}

// PlacerFunc lets a stateless function serve as a Placer.
type PlacerFunc func(b Board, numMines, safeX, safeY int) Board

func (f PlacerFunc) Place(b Board, numMines, safeX, safeY int) Board {
	return f(b, numMines, safeX, safeY)
}

// placerCloner is implemented by placers that carry state a cloned game
// must not share.
type placerCloner interface {
	clonePlacer() Placer
}

type randomPlacer struct {
	src *rand.PCG
}

// RandomPlacer draws every layout from src. Cloning a game copies the
// generator state, so a discarded clone never advances the original.
func RandomPlacer(src *rand.PCG) Placer {
	return &randomPlacer{src: src}
}

func (p *randomPlacer) Place(b Board, numMines, safeX, safeY int) Board {
	return PlaceMines(b, rand.New(p.src), numMines, safeX, safeY)
}

func (p *randomPlacer) clonePlacer() Placer {
	src := *p.src
	return &randomPlacer{src: &src}
}

// FixedPlacer puts mines exactly on points and ignores numMines. Points that
// fall outside the board or on the safe cell are dropped.
func FixedPlacer(points ...Point) Placer {
	return PlacerFunc(func(b Board, _, safeX, safeY int) Board {
		next := b.Clone()
		for _, p := range points {
			if !next.InBounds(p.X, p.Y) || (p.X == safeX && p.Y == safeY) {
				continue
			}
			next.cells[next.index(p.X, p.Y)].IsMine = true
		}
		next.fillAdjacent()
		return next
	})
}

// NewSource returns a PCG source seeded from the runtime's hash seed.
func NewSource() *rand.PCG {
	return rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64())
}
