package gamemap

import (
	"errors"
	"testing"

	"github.com/gravitas-games/hexpath/hex"
	"github.com/gravitas-games/hexpath/path"
)

func testCosts(t *testing.T) Costs {
	t.Helper()
	c, err := CostsFromConfig(map[string]int{
		"plains": 1, "forest": 2, "hills": 3, "swamp": 4, "mountain": -1, "water": -1,
	})
	if err != nil {
		t.Fatalf("unexpected cost error: %v", err)
	}
	return c
}

func TestCostsFromConfig(t *testing.T) {
	c := testCosts(t)
	if c.Of(Forest) != 2 || c.Of(Mountain) != path.Impassable || c.Of(Terrain(42)) != path.Impassable {
		t.Fatalf("unexpected costs %v", c)
	}
	partial, err := CostsFromConfig(map[string]int{"plains": 1})
	if err != nil {
		t.Fatalf("unexpected cost error: %v", err)
	}
	if partial.Of(Hills) != path.Impassable {
		t.Fatalf("missing terrain should be impassable")
	}
	if _, err := CostsFromConfig(map[string]int{"lava": 9}); !errors.Is(err, ErrUnknownTerrain) {
		t.Fatalf("expected ErrUnknownTerrain, got %v", err)
	}
}

func TestParseTerrain(t *testing.T) {
	for tr := Plains; tr < numTerrains; tr++ {
		got, err := ParseTerrain(tr.String())
		if err != nil || got != tr {
			t.Fatalf("ParseTerrain(%q) = %v, %v", tr.String(), got, err)
		}
	}
}

func TestNewMapCostOf(t *testing.T) {
	gm := New(5, testCosts(t))
	if gm.HexCount() != 91 {
		t.Fatalf("HexCount = %d, want 91", gm.HexCount())
	}
	if gm.CostOf(hex.New(2, 2)) != 1 {
		t.Fatalf("plains cost = %d", gm.CostOf(hex.New(2, 2)))
	}
	if gm.CostOf(hex.New(6, 0)) != path.Impassable {
		t.Fatalf("out-of-map tile should be impassable")
	}
}

func TestSetTerrain(t *testing.T) {
	gm := New(3, testCosts(t))
	a := hex.New(1, -1)
	if err := gm.SetTerrain(a, Swamp); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if tr, _ := gm.Terrain(a); tr != Swamp || gm.CostOf(a) != 4 {
		t.Fatalf("terrain %v cost %d after set", tr, gm.CostOf(a))
	}
	if err := gm.SetTerrain(hex.New(4, 0), Forest); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := gm.SetTerrain(a, Terrain(99)); !errors.Is(err, ErrUnknownTerrain) {
		t.Fatalf("expected ErrUnknownTerrain, got %v", err)
	}
}

func TestFindPathAroundMountains(t *testing.T) {
	gm := New(4, testCosts(t))
	for r := -4; r <= 3; r++ {
		if gm.InBounds(hex.New(0, r)) {
			if err := gm.SetTerrain(hex.New(0, r), Mountain); err != nil {
				t.Fatalf("unexpected set error: %v", err)
			}
		}
	}
	res := gm.FindPath(hex.New(-2, 0), hex.New(2, 0))
	if !res.Found {
		t.Fatalf("expected a path through the gap")
	}
	for _, a := range res.Path {
		if tr, _ := gm.Terrain(a); tr == Mountain {
			t.Fatalf("path crosses mountain at %v", a)
		}
	}
	if err := gm.SetTerrain(hex.New(0, 4), Mountain); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if res := gm.FindPath(hex.New(-2, 0), hex.New(2, 0)); res.Found {
		t.Fatalf("wall is closed, got path %v", res.Path)
	}
	if res := gm.FindPath(hex.New(-2, 0), hex.New(9, 0)); res.Found || len(res.Path) != 0 {
		t.Fatalf("goal outside map should be unreachable")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(6, 1234, testCosts(t))
	b := Generate(6, 1234, testCosts(t))
	if a.HexCount() != 127 || a.Seed != 1234 {
		t.Fatalf("HexCount = %d seed = %d", a.HexCount(), a.Seed)
	}
	for _, c := range hex.Hexagon(6) {
		ta, _ := a.Terrain(c)
		tb, _ := b.Terrain(c)
		if ta != tb {
			t.Fatalf("terrain differs at %v: %v vs %v", c, ta, tb)
		}
	}
	total := 0
	for _, n := range a.TerrainCounts() {
		total += n
	}
	if total != a.HexCount() {
		t.Fatalf("terrain counts sum to %d", total)
	}
}

func TestDeriveTerrain(t *testing.T) {
	cases := []struct {
		elev, wet float64
		want      Terrain
	}{
		{0.1, 0.5, Water},
		{0.9, 0.5, Mountain},
		{0.7, 0.9, Hills},
		{0.35, 0.9, Swamp},
		{0.5, 0.6, Forest},
		{0.5, 0.2, Plains},
	}
	for _, c := range cases {
		if got := deriveTerrain(c.elev, c.wet); got != c.want {
			t.Errorf("deriveTerrain(%v, %v) = %v, want %v", c.elev, c.wet, got, c.want)
		}
	}
}
