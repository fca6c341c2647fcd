package hex

// Ring returns the axial coordinates at exact distance k from center c,
// starting k steps to the left and walking the six sides clockwise in
// Directions order. If k==0, returns [c]; a negative k returns nil.
func Ring(c Axial, k int) []Axial {
	if k < 0 {
		return nil
	}
	if k == 0 {
		return []Axial{c}
	}
	res := make([]Axial, 0, 6*k)
	cur := c.Add(Left.Offset().Scale(k))
	for _, d := range Directions {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Neighbor(d)
		}
	}
	return res
}

// Hexagon returns all coordinates within radius of the origin.
func Hexagon(radius int) []Axial {
	return Axial{}.NeighborsWithin(radius)
}

// Rectangle returns the axial parallelogram q in [0,width], r in [0,height].
func Rectangle(width, height int) []Axial {
	if width < 0 || height < 0 {
		return nil
	}
	res := make([]Axial, 0, (width+1)*(height+1))
	for q := 0; q <= width; q++ {
		for r := 0; r <= height; r++ {
			res = append(res, Axial{q, r})
		}
	}
	return res
}

// Triangle returns q in [0,size], r in [0,size-q].
func Triangle(size int) []Axial {
	if size < 0 {
		return nil
	}
	res := make([]Axial, 0, (size+1)*(size+2)/2)
	for q := 0; q <= size; q++ {
		for r := 0; r <= size-q; r++ {
			res = append(res, Axial{q, r})
		}
	}
	return res
}
