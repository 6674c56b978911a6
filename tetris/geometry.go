package tetris

// Coordinate is a cell on the matrix.
// Columns are 0 > 9 left to right and represent the X axis.
// Rows are 0 > 19 bottom to top and represent the Y axis.
type Coordinate struct {
	X, Y int
}

// Offset is a signed displacement. Shapes, movements and kicks are all offsets.
type Offset struct {
	X, Y int
}

func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

func (o Offset) Neg() Offset {
	return Offset{X: -o.X, Y: -o.Y}
}

// Rotate applies the rotation multiply: every clockwise step maps (x, y) to (y, -x).
func (o Offset) Rotate(r Rotation) Offset {
	switch r.normalize() {
	case East:
		return Offset{X: o.Y, Y: -o.X}
	case South:
		return Offset{X: -o.X, Y: -o.Y}
	case West:
		return Offset{X: -o.Y, Y: o.X}
	default:
		return o
	}
}

// Coordinate returns the offset as a grid coordinate. It fails for negative values.
func (o Offset) Coordinate() (Coordinate, bool) {
	if o.X < 0 || o.Y < 0 {
		return Coordinate{}, false
	}
	return Coordinate{X: o.X, Y: o.Y}, true
}

// Rotation is the orientation of a piece. Adding one is a clockwise step.
type Rotation uint8

const (
	North Rotation = iota // Spawn state.
	East                  // One clockwise step from spawn.
	South                 // Two steps from spawn.
	West                  // One counter-clockwise step from spawn.
)

func (r Rotation) normalize() Rotation { return r % 4 }

// Rotate returns the rotation after one step in the given direction.
func (r Rotation) Rotate(d RotateDirection) Rotation {
	return (r + Rotation(d)).normalize()
}

func (r Rotation) String() string {
	return [...]string{"N", "E", "S", "W"}[r.normalize()]
}

// RotateDirection is expressed as the number of clockwise steps it represents.
type RotateDirection uint8

const (
	Clockwise        RotateDirection = 1
	CounterClockwise RotateDirection = 3
)

func (d RotateDirection) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

type MoveDirection int

const (
	Left  MoveDirection = -1
	Right MoveDirection = 1
)

func (d MoveDirection) offset() Offset { return Offset{X: int(d)} }

func (d MoveDirection) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

var down = Offset{Y: -1}
