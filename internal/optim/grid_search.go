package optim

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInterval = errors.New("optim: invalid search interval")
	ErrNoFiniteValue   = errors.New("optim: no finite function value on grid")
)

// GridSearch locates the minimum of a function of one variable. Each round
// evaluates a uniform grid and narrows the interval to the neighbours of the
// best grid point.
type GridSearch struct {
	points int
	rounds int
}

func NewGridSearch(points, rounds int) *GridSearch {
	if points < 3 {
		points = 3
	}
	if rounds < 1 {
		rounds = 1
	}
	return &GridSearch{points: points, rounds: rounds}
}

// Search returns the best x found in [lo, hi] and f(x). Non-finite values of
// f are never chosen.
func (g *GridSearch) Search(ctx context.Context, f func(float64) float64, lo, hi float64) (float64, float64, error) {
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, errors.Wrapf(ErrInvalidInterval, "[%g, %g]", lo, hi)
	}

	bestX, bestF := math.NaN(), math.Inf(1)
	for round := 0; round < g.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		step := (hi - lo) / float64(g.points-1)
		bestIdx := -1
		for i := 0; i < g.points; i++ {
			x := lo + float64(i)*step
			val := f(x)
			if math.IsNaN(val) || math.IsInf(val, 0) {
				continue
			}
			if val < bestF {
				bestF, bestX = val, x
				bestIdx = i
			}
		}
		if math.IsNaN(bestX) {
			return 0, 0, errors.Wrapf(ErrNoFiniteValue, "[%g, %g]", lo, hi)
		}
		if bestIdx < 0 {
			// an earlier round's point is still the best
			bestIdx = int(math.Round((bestX - lo) / step))
		}

		newLo := math.Max(lo, lo+float64(bestIdx-1)*step)
		newHi := math.Min(hi, lo+float64(bestIdx+1)*step)
		lo, hi = newLo, newHi
		if !(hi > lo) {
			break
		}
	}
	return bestX, bestF, nil
}
