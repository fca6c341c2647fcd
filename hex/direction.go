package hex

// Direction is one of the six pointy-top neighbor directions.
type Direction int

const (
	TopRight Direction = iota
	Right
	BottomRight
	BottomLeft
	Left
	TopLeft
)

// Directions lists every direction in the fixed neighbor iteration order.
var Directions = [6]Direction{TopRight, Right, BottomRight, BottomLeft, Left, TopLeft}

// offsets is indexed by Direction.
var offsets = [6]Axial{
	TopRight:    {+1, -1},
	Right:       {+1, 0},
	BottomRight: {0, +1},
	BottomLeft:  {-1, +1},
	Left:        {-1, 0},
	TopLeft:     {0, -1},
}

var directionNames = [6]string{"top_right", "right", "bottom_right", "bottom_left", "left", "top_left"}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool { return d >= TopRight && d <= TopLeft }

// Offset returns the axial delta for d. It panics for an invalid direction.
func (d Direction) Offset() Axial { return offsets[d] }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return (d + 3) % 6 }

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection maps a name produced by Direction.String back to its value.
func ParseDirection(s string) (Direction, bool) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), true
		}
	}
	return 0, false
}
