package geom

// Dir4 represents a cardinal direction on the tile grid
type Dir4 int

// Dir4 constants
const (
	Up Dir4 = iota
	Right
	Down
	Left
)

// Axis is the axis a direction moves along
type Axis int

// Axis constants
const (
	Vertical Axis = iota
	Horizontal
)

// Dirs returns all valid directions for iteration
func Dirs() []Dir4 {
	return []Dir4{Up, Right, Down, Left}
}

// String returns the string representation of a direction
func (d Dir4) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Dir4) IsValid() bool {
	return d >= Up && d <= Left
}

// Opposite returns the opposite direction
func (d Dir4) Opposite() Dir4 {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	case Left:
		return Right
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Dir4) Delta() Loc {
	switch d {
	case Up:
		return Loc{0, -1}
	case Right:
		return Loc{1, 0}
	case Down:
		return Loc{0, 1}
	case Left:
		return Loc{-1, 0}
	default:
		return Loc{}
	}
}

// Axis returns the axis this direction moves along
func (d Dir4) Axis() Axis {
	if d == Up || d == Down {
		return Vertical
	}
	return Horizontal
}

// Orth returns the other axis
func (a Axis) Orth() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}
