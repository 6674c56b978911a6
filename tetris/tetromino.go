package tetris

import "fmt"

type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every tetromino, the content of a full bag.
var Kinds = [7]Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	return [...]string{"I", "O", "T", "S", "Z", "J", "L"}[k]
}

func (k Kind) Color() Color {
	return [...]Color{Cyan, Yellow, Purple, Green, Red, Blue, Orange}[k]
}

/*
Shapes are relative to the piece origin, marked 0. Y grows upwards.

.	I			O			T			S
.	. . . .		. O O .		. O .		. O O
.	O 0 O O		. 0 O .		O 0 O		O 0 .

.	Z			J			L
.	O O .		O . .		. . O
.	. 0 O		O 0 O		O 0 O
*/
var shapes = [7][4]Offset{
	I: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	T: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	S: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	Z: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
	J: {{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	L: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
}

// Shape returns the canonical, un-rotated cells of the kind.
func (k Kind) Shape() [4]Offset { return shapes[k] }

// the I rotates around the center of its 4x4 box instead of a cell,
// so every rotation needs a correction after the multiply.
var iCorrection = [4]Offset{
	North: {0, 0},
	East:  {1, 0},
	South: {1, -1},
	West:  {0, -1},
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9
19	. . . . . O . . . .
18	. . . . O 0 O . . .

The I and the O are shifted one column to the left to keep them centered.

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2 3 4 5 6 7 8 9
19	. . . . . . . . . .		19	. . . . O O . . . .
18	. . . O 0 O O . . .		18	. . . . 0 O . . . .
*/
var spawn = Offset{X: 5, Y: 18}

// Piece is a tetromino with a position and a rotation.
// Pieces are values: moving or rotating one returns a new Piece.
type Piece struct {
	Kind     Kind
	Position Offset
	Rotation Rotation
}

// NewPiece returns a piece of the given kind at the spawn location.
func NewPiece(k Kind) Piece {
	p := Piece{Kind: k, Position: spawn, Rotation: North}
	if k == I || k == O {
		p.Position.X--
	}
	return p
}

func (p Piece) Color() Color { return p.Kind.Color() }

func (p Piece) rotate(o Offset) Offset {
	switch p.Kind {
	case O:
		return o
	case I:
		return o.Rotate(p.Rotation).Add(iCorrection[p.Rotation.normalize()])
	default:
		return o.Rotate(p.Rotation)
	}
}

// Cells resolves the piece to matrix coordinates. It fails when a cell would
// have a negative coordinate or fall outside the columns of the matrix.
// Rows above the matrix resolve, the matrix treats them as clipping.
func (p Piece) Cells() ([4]Coordinate, bool) {
	var cells [4]Coordinate
	for i, o := range shapes[p.Kind] {
		c, ok := p.rotate(o).Add(p.Position).Coordinate()
		if !ok || c.X >= Width {
			return [4]Coordinate{}, false
		}
		cells[i] = c
	}
	return cells, true
}

func (p Piece) MovedBy(o Offset) Piece {
	p.Position = p.Position.Add(o)
	return p
}

func (p Piece) RotatedBy(d RotateDirection) Piece {
	p.Rotation = p.Rotation.Rotate(d)
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@(%d,%d)%s", p.Kind, p.Position.X, p.Position.Y, p.Rotation)
}
