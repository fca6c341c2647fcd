package gamemap

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gravitas-games/hexpath/hex"
	"github.com/gravitas-games/hexpath/path"
)

// ErrOutOfBounds is returned when editing a tile outside the map radius
var ErrOutOfBounds = errors.New("coordinate outside map")

// GameMap is a hexagon-shaped tile map centred on the origin. It is safe
// for concurrent use.
type GameMap struct {
	Radius int
	Seed   int64

	mu    sync.RWMutex
	tiles map[hex.Axial]Terrain
	costs Costs
}

// New creates a map of the given radius where every tile is plains
func New(radius int, costs Costs) *GameMap {
	gm := &GameMap{
		Radius: radius,
		tiles:  make(map[hex.Axial]Terrain, 1+3*radius*(radius+1)),
		costs:  costs,
	}
	for _, a := range hex.Hexagon(radius) {
		gm.tiles[a] = Plains
	}
	return gm
}

// InBounds reports whether a lies within the map radius
func (gm *GameMap) InBounds(a hex.Axial) bool {
	return hex.Distance(hex.Axial{}, a) <= gm.Radius
}

// Terrain returns the terrain at a
func (gm *GameMap) Terrain(a hex.Axial) (Terrain, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	t, ok := gm.tiles[a]
	return t, ok
}

// SetTerrain replaces the terrain at a
func (gm *GameMap) SetTerrain(a hex.Axial, t Terrain) error {
	if t >= numTerrains {
		return fmt.Errorf("%w: %d", ErrUnknownTerrain, t)
	}
	if !gm.InBounds(a) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, a)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.tiles[a] = t
	return nil
}

// CostOf is a path.CostFunc over the map. Coordinates outside the map are
// impassable.
func (gm *GameMap) CostOf(a hex.Axial) int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.costOf(a)
}

func (gm *GameMap) costOf(a hex.Axial) int {
	t, ok := gm.tiles[a]
	if !ok {
		return path.Impassable
	}
	return gm.costs.Of(t)
}

// FindPath searches the map under a single read lock so the search sees
// one consistent version of the tiles.
func (gm *GameMap) FindPath(start, goal hex.Axial) path.Result {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if !gm.InBounds(start) || !gm.InBounds(goal) {
		return path.Result{Path: []hex.Axial{}}
	}
	return path.Search(start, goal, gm.costOf)
}

// HexCount returns the number of tiles in the map
func (gm *GameMap) HexCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.tiles)
}

// TerrainCounts returns how many tiles carry each terrain
func (gm *GameMap) TerrainCounts() map[Terrain]int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	counts := make(map[Terrain]int)
	for _, t := range gm.tiles {
		counts[t]++
	}
	return counts
}

// LogSummary prints the terrain distribution
func (gm *GameMap) LogSummary() {
	counts := gm.TerrainCounts()
	for t := Plains; t < numTerrains; t++ {
		log.Printf("  %-8s %d", t, counts[t])
	}
}
