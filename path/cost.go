// Package path implements A* shortest-path search over the hex grid.
package path

import (
	"math"

	"github.com/gravitas-games/hexpath/hex"
)

// Impassable is the cost a CostFunc returns for a coordinate that can never
// be entered.
const Impassable = math.MaxInt

// CostFunc returns the cost of entering a coordinate, or Impassable.
// Negative costs are treated as Impassable. A coordinate whose cost would
// push the accumulated path cost plus the remaining distance past
// math.MaxInt is skipped as unreachable. A CostFunc must answer
// consistently for the duration of one search and must be safe for
// concurrent use if searches run concurrently.
type CostFunc func(a hex.Axial) int

func (f CostFunc) enter(a hex.Axial) (int, bool) {
	c := f(a)
	if c < 0 || c == Impassable {
		return 0, false
	}
	return c, true
}

// Uniform charges k for every coordinate.
func Uniform(k int) CostFunc {
	return func(hex.Axial) int { return k }
}

// FromMap charges the mapped cost; coordinates missing from costs are
// Impassable.
func FromMap(costs map[hex.Axial]int) CostFunc {
	return func(a hex.Axial) int {
		c, ok := costs[a]
		if !ok {
			return Impassable
		}
		return c
	}
}

// WithinDisc limits cost to the disc of radius R around center.
func WithinDisc(center hex.Axial, R int, cost CostFunc) CostFunc {
	return func(a hex.Axial) int {
		if hex.Distance(center, a) > R {
			return Impassable
		}
		return cost(a)
	}
}

// Blocking makes every coordinate in blocked Impassable on top of cost.
func Blocking(cost CostFunc, blocked map[hex.Axial]bool) CostFunc {
	return func(a hex.Axial) int {
		if blocked[a] {
			return Impassable
		}
		return cost(a)
	}
}
