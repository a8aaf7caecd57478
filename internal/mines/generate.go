package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// PlaceMines returns a copy of b with numMines mines spread uniformly over
// every cell except safeX:safeY, and with adjacency counts filled in. b is
// expected to hold no mines; numMines is capped at the number of candidate
// cells.
func PlaceMines(b Board, r *rand.Rand, numMines, safeX, safeY int) Board {
	next := b.Clone()

	safe := -1
	if next.InBounds(safeX, safeY) {
		safe = next.index(safeX, safeY)
	}

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(next.cells))
	for i, c := range next.cells {
		if i != safe && !c.IsMine {
			candidates = append(candidates, i)
		}
	}

	/*
	 * Now pick n off the list at random.
	 */
	k := len(candidates)
	for range min(numMines, k) {
		i := r.IntN(k)
		next.cells[candidates[i]].IsMine = true
		k--
		candidates[i] = candidates[k]
	}

	next.fillAdjacent()

	Log.WithFields(logrus.Fields{
		"width":  next.Width,
		"height": next.Height,
		"mines":  next.Mines(),
		"safe":   Point{safeX, safeY},
	}).Debug("placed mines")

	return next
}
