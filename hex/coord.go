// Package hex implements axial/cube coordinates for a pointy-top hexagon grid.
package hex

import (
	"fmt"
	"math"
)

// Axial represents axial coordinates (q, r) for pointy-top orientation.
// The third cube coordinate is derived as z = -q - r and never stored.
type Axial struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Cube represents cube coordinates (q, r, z) with q+r+z=0.
type Cube struct {
	Q int
	R int
	Z int
}

// New returns the axial coordinate (q, r).
func New(q, r int) Axial { return Axial{Q: q, R: r} }

// Z returns the implicit third cube coordinate.
func (a Axial) Z() int { return -a.Q - a.R }

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Sub returns a-b in axial space.
func (a Axial) Sub(b Axial) Axial { return Axial{a.Q - b.Q, a.R - b.R} }

// Scale scales an axial vector by k.
func (a Axial) Scale(k int) Axial { return Axial{a.Q * k, a.R * k} }

// ToCube converts axial to cube.
func (a Axial) ToCube() Cube { return Cube{Q: a.Q, R: a.R, Z: a.Z()} }

// ToAxial converts cube to axial. Z is dropped; it is implied by Q and R.
func (c Cube) ToAxial() Axial { return Axial{Q: c.Q, R: c.R} }

func (a Axial) String() string { return fmt.Sprintf("(%d, %d)", a.Q, a.R) }

// Distance returns the hex distance between a and b: half the cube-space
// manhattan distance.
func Distance(a, b Axial) int {
	d := a.Sub(b)
	return (abs(d.Q) + abs(d.R) + abs(d.Z())) / 2
}

// DistanceTo is Distance(a, b).
func (a Axial) DistanceTo(b Axial) int { return Distance(a, b) }

// IsNeighbor reports whether b is exactly one direction step away from a.
func (a Axial) IsNeighbor(b Axial) bool {
	for _, off := range offsets {
		if a.Add(off) == b {
			return true
		}
	}
	return false
}

// Neighbor returns the adjacent coordinate in direction d.
func (a Axial) Neighbor(d Direction) Axial { return a.Add(d.Offset()) }

// Neighbors returns the six adjacent coordinates in Directions order.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, off := range offsets {
		out[i] = a.Add(off)
	}
	return out
}

// NeighborsWithin returns every coordinate at distance <= radius from a,
// including a itself. The result has 3*radius^2 + 3*radius + 1 entries,
// or none for a negative radius.
func (a Axial) NeighborsWithin(radius int) []Axial {
	if radius < 0 {
		return nil
	}
	res := make([]Axial, 0, 1+3*radius*(radius+1))
	for dq := -radius; dq <= radius; dq++ {
		for dr := max(-radius, -dq-radius); dr <= min(radius, -dq+radius); dr++ {
			res = append(res, Axial{a.Q + dq, a.R + dr})
		}
	}
	return res
}

// AxialToPixel converts axial to pixel coordinates for pointy-top layout.
// size is the hex radius (corner to center) in pixels.
func AxialToPixel(a Axial, size float64) (x, y float64) {
	// pointy-top: x = size*sqrt(3)*(q + r/2); y = size*3/2*r
	x = size * math.Sqrt(3) * (float64(a.Q) + float64(a.R)/2.0)
	y = size * 1.5 * float64(a.R)
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
