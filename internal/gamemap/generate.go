package gamemap

import (
	"log"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/gravitas-games/hexpath/hex"
)

// Terrain thresholds over normalized noise
const (
	seaLevel      = 0.30
	hillLevel     = 0.62
	mountainLevel = 0.75
	wetLevel      = 0.62
)

// Generate creates a map of the given radius with terrain derived from two
// layers of simplex noise (elevation and moisture). A zero seed picks a
// random one.
func Generate(radius int, seed int64, costs Costs) *GameMap {
	if seed == 0 {
		seed = rand.Int63()
	}
	log.Printf("Generating game map with radius %d (seed %d)", radius, seed)

	elevNoise := opensimplex.NewNormalized(seed)
	wetNoise := opensimplex.NewNormalized(seed + 1)

	gm := New(radius, costs)
	gm.Seed = seed
	for a := range gm.tiles {
		// Unit-distance hex centres in continuous space.
		x, y := hex.AxialToPixel(a, 1/math.Sqrt(3))
		elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
		wet := octaveNoise(wetNoise, x, y, 3, 0.06, 0.5)
		gm.tiles[a] = deriveTerrain(elev, wet)
	}

	log.Printf("Game map generated with %d hexes", len(gm.tiles))
	return gm
}

func deriveTerrain(elev, wet float64) Terrain {
	switch {
	case elev < seaLevel:
		return Water
	case elev > mountainLevel:
		return Mountain
	case elev > hillLevel:
		return Hills
	case wet > wetLevel && elev < seaLevel+0.12:
		return Swamp
	case wet > wetLevel-0.1:
		return Forest
	default:
		return Plains
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
