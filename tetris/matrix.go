package tetris

import (
	"fmt"
	"iter"
	"slices"
)

const (
	Width  = 10
	Height = 20
	size   = Width * Height
)

// Color is the content of a matrix cell. Empty is an empty cell,
// otherwise it holds the color of the piece that was placed there.
type Color uint8

const (
	Empty Color = iota
	Yellow
	Cyan
	Purple
	Orange
	Blue
	Green
	Red
)

func (c Color) String() string {
	return [...]string{"", "yellow", "cyan", "purple", "orange", "blue", "green", "red"}[c]
}

// Matrix is the playfield. 20 rows x 10 columns stored bottom to top:
// the cell (x, y) lives at index x + y*Width.
type Matrix [size]Color

// OnMatrix reports whether c is inside the playfield.
func OnMatrix(c Coordinate) bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

func index(c Coordinate) int {
	if !OnMatrix(c) {
		panic(fmt.Sprintf("tetris: coordinate %v is outside the matrix", c))
	}
	return c.X + c.Y*Width
}

func (m *Matrix) At(c Coordinate) Color { return m[index(c)] }

func (m *Matrix) Set(c Coordinate, color Color) { m[index(c)] = color }

// IsClipping reports whether any of the piece's cells is out of bounds or
// already taken. A piece that cannot be resolved to coordinates clips.
func (m *Matrix) IsClipping(p Piece) bool {
	cells, ok := p.Cells()
	if !ok {
		return true
	}
	for _, c := range cells {
		if !OnMatrix(c) || m.At(c) != Empty {
			return true
		}
	}
	return false
}

// IsPlaceable reports whether every cell of the piece is on the matrix and empty.
func (m *Matrix) IsPlaceable(p Piece) bool {
	cells, ok := p.Cells()
	if !ok {
		return false
	}
	for _, c := range cells {
		if !OnMatrix(c) || m.At(c) != Empty {
			return false
		}
	}
	return true
}

func (m *Matrix) row(y int) []Color {
	return m[y*Width : (y+1)*Width]
}

// FullLines returns the indexes of the complete rows in ascending order.
func (m *Matrix) FullLines() []int {
	var lines []int
	for y := range Height {
		if !slices.Contains(m.row(y), Empty) {
			lines = append(lines, y)
		}
	}
	return lines
}

// ClearLines removes the given rows and collapses everything above them.
// lines must be sorted and without duplicates.
func (m *Matrix) ClearLines(lines []int) {
	for i, y := range lines {
		if y < 0 || y >= Height || (i > 0 && lines[i-1] >= y) {
			panic(fmt.Sprintf("tetris: invalid lines to clear %v", lines))
		}
	}
	// remove complete lines in reverse order to avoid index shift issues.
	for i := len(lines) - 1; i >= 0; i-- {
		y := lines[i]
		copy(m[y*Width:], m[(y+1)*Width:])
		clear(m.row(Height - 1))
	}
}

// Cells iterates over every cell of the matrix, bottom row first.
func (m *Matrix) Cells() iter.Seq2[Coordinate, Color] {
	return func(yield func(Coordinate, Color) bool) {
		for i, color := range m {
			if !yield(Coordinate{X: i % Width, Y: i / Width}, color) {
				return
			}
		}
	}
}
