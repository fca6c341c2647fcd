package hex

import "testing"

func TestRing(t *testing.T) {
	c := Axial{1, 1}
	if got := Ring(c, 0); len(got) != 1 || got[0] != c {
		t.Fatalf("Ring(c, 0) = %v", got)
	}
	for k := 1; k <= 5; k++ {
		ring := Ring(c, k)
		if len(ring) != 6*k {
			t.Fatalf("Ring(%d) has %d cells, want %d", k, len(ring), 6*k)
		}
		seen := map[Axial]bool{}
		for i, a := range ring {
			if Distance(c, a) != k {
				t.Fatalf("Ring(%d)[%d] = %v at distance %d", k, i, a, Distance(c, a))
			}
			if seen[a] {
				t.Fatalf("Ring(%d) repeats %v", k, a)
			}
			seen[a] = true
			next := ring[(i+1)%len(ring)]
			if !a.IsNeighbor(next) {
				t.Fatalf("Ring(%d) is not contiguous between %v and %v", k, a, next)
			}
		}
	}
}

func TestHexagonMatchesRings(t *testing.T) {
	const radius = 4
	all := map[Axial]bool{}
	for _, a := range Hexagon(radius) {
		all[a] = true
	}
	n := 0
	for k := 0; k <= radius; k++ {
		for _, a := range Ring(Axial{}, k) {
			if !all[a] {
				t.Fatalf("ring cell %v missing from hexagon", a)
			}
			n++
		}
	}
	if n != len(all) {
		t.Fatalf("rings cover %d cells, hexagon has %d", n, len(all))
	}
}

func TestRectangleAndTriangle(t *testing.T) {
	if got := len(Rectangle(3, 2)); got != 12 {
		t.Fatalf("Rectangle(3,2) has %d cells, want 12", got)
	}
	if got := len(Triangle(3)); got != 10 {
		t.Fatalf("Triangle(3) has %d cells, want 10", got)
	}
	for _, a := range Triangle(5) {
		if a.Q < 0 || a.R < 0 || a.Q+a.R > 5 {
			t.Fatalf("Triangle(5) produced %v", a)
		}
	}
	if Rectangle(-1, 2) != nil || Triangle(-1) != nil || Hexagon(-1) != nil {
		t.Fatalf("negative sizes should produce nil")
	}
}
