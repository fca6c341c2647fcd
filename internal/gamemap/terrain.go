package gamemap

import (
	"errors"
	"fmt"

	"github.com/gravitas-games/hexpath/path"
)

// Terrain is the content of a single tile
type Terrain uint8

const (
	Plains Terrain = iota
	Forest
	Hills
	Swamp
	Mountain
	Water
	numTerrains
)

var terrainNames = [numTerrains]string{"plains", "forest", "hills", "swamp", "mountain", "water"}

// ErrUnknownTerrain is returned for a terrain name that is not recognised
var ErrUnknownTerrain = errors.New("unknown terrain")

func (t Terrain) String() string {
	if t >= numTerrains {
		return "unknown"
	}
	return terrainNames[t]
}

// ParseTerrain maps a terrain name to its value
func ParseTerrain(s string) (Terrain, error) {
	for i, n := range terrainNames {
		if n == s {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}

// Costs holds the movement cost of every terrain, path.Impassable for
// terrain that cannot be entered
type Costs [numTerrains]int

// CostsFromConfig builds a cost table from terrain names. Negative costs
// mark the terrain impassable; terrain missing from m is impassable too.
func CostsFromConfig(m map[string]int) (Costs, error) {
	var c Costs
	for i := range c {
		c[i] = path.Impassable
	}
	for name, cost := range m {
		t, err := ParseTerrain(name)
		if err != nil {
			return c, err
		}
		if cost >= 0 {
			c[t] = cost
		}
	}
	return c, nil
}

// Of returns the movement cost of t
func (c Costs) Of(t Terrain) int {
	if t >= numTerrains {
		return path.Impassable
	}
	return c[t]
}
