// Package tetris contains the logic of the game
// based on https://tetris.wiki/Tetris_Guideline
package tetris

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"time"
)

var (
	// ErrBlocked is returned when a move or a rotation would leave the piece
	// out of bounds or overlapping the stack. The cursor is left unchanged.
	ErrBlocked = errors.New("tetris: blocked")
	// ErrNoCursor is returned when moving or rotating between a placement and the next spawn.
	ErrNoCursor = errors.New("tetris: no cursor")
	// ErrBlockOut is returned when a new piece overlaps the stack at the spawn location.
	ErrBlockOut = errors.New("tetris: block out")
)

const (
	minLevel = 1
	maxLevel = 20
)

// cursor is the falling piece. Between a placement and the next spawn there's none.
type cursor struct {
	piece Piece
	ok    bool
}

// Engine owns the matrix, the bag, the cursor and the hold slot and
// exposes the atomic operations of the game. It's not safe for concurrent use.
type Engine struct {
	matrix Matrix
	bag    *bag
	kicks  Kicker
	cursor cursor

	held    Kind
	hasHeld bool

	level int
	lines int
}

// NewEngine returns an engine with an empty matrix at level 1.
// rng drives the bag shuffling; seed it to replay a game.
func NewEngine(rng *rand.Rand) *Engine {
	return NewConfigurableEngine(rng, SRSPlus())
}

func NewConfigurableEngine(rng *rand.Rand, k Kicker) *Engine {
	return &Engine{
		bag:   newBag(rng),
		kicks: k,
		level: minLevel,
	}
}

// AddCursor draws the next piece from the bag and spawns it.
func (e *Engine) AddCursor() error {
	if e.cursor.ok {
		panic("tetris: adding a cursor while another one is active")
	}
	return e.spawn(e.bag.draw())
}

func (e *Engine) spawn(k Kind) error {
	p := NewPiece(k)
	if e.matrix.IsClipping(p) {
		return fmt.Errorf("spawning %s: %w", k, ErrBlockOut)
	}
	e.cursor = cursor{piece: p, ok: true}
	return nil
}

func (e *Engine) mustCursor(op string) Piece {
	if !e.cursor.ok {
		panic(fmt.Sprintf("tetris: %s without a cursor", op))
	}
	return e.cursor.piece
}

func (e *Engine) MoveCursor(d MoveDirection) error {
	if !e.cursor.ok {
		return ErrNoCursor
	}
	p := e.cursor.piece.MovedBy(d.offset())
	if e.matrix.IsClipping(p) {
		return ErrBlocked
	}
	e.cursor.piece = p
	return nil
}

// RotateCursor rotates the cursor trying the unkicked rotation first
// and then every kick of the engine's kick table in order.
func (e *Engine) RotateCursor(d RotateDirection) error {
	if !e.cursor.ok {
		return ErrNoCursor
	}
	cur := e.cursor.piece
	return e.rotateCursor(d, e.kicks.Kicks(cur.Kind, cur.Rotation, d))
}

func (e *Engine) rotateCursor(d RotateDirection, kicks []Offset) error {
	rotated := e.cursor.piece.RotatedBy(d)
	if !e.matrix.IsClipping(rotated) {
		e.cursor.piece = rotated
		return nil
	}
	for _, k := range kicks {
		p := rotated.MovedBy(k)
		if !e.matrix.IsClipping(p) {
			e.cursor.piece = p
			return nil
		}
	}
	return ErrBlocked
}

// TickDown moves the cursor one row down. The caller must have checked
// with CursorHasHitBottom that the move is legal.
func (e *Engine) TickDown() {
	p := e.mustCursor("ticking down").MovedBy(down)
	if e.matrix.IsClipping(p) {
		panic(fmt.Sprintf("tetris: ticking down a grounded cursor %v", e.cursor.piece))
	}
	e.cursor.piece = p
}

func (e *Engine) CursorHasHitBottom() bool {
	return e.matrix.IsClipping(e.mustCursor("checking the bottom").MovedBy(down))
}

// HardDrop moves the cursor down until it hits the bottom. It doesn't place it.
func (e *Engine) HardDrop() {
	for !e.CursorHasHitBottom() {
		e.TickDown()
	}
}

// PlaceCursor transfers the cursor to the matrix.
func (e *Engine) PlaceCursor() {
	p := e.mustCursor("placing")
	if !e.matrix.IsPlaceable(p) {
		panic(fmt.Sprintf("tetris: placing a cursor that is not placeable %v", p))
	}
	cells, _ := p.Cells()
	for _, c := range cells {
		e.matrix.Set(c, p.Color())
	}
	e.cursor = cursor{}
}

// LineClear removes the complete lines. observer is called with the lines
// before they are removed so they can be animated. It's not called when
// there's nothing to clear.
func (e *Engine) LineClear(observer func(lines []int)) {
	lines := e.matrix.FullLines()
	if len(lines) == 0 {
		return
	}
	if observer != nil {
		observer(lines)
	}
	e.matrix.ClearLines(lines)
	e.lines += len(lines)
}

// HoldCursor swaps the cursor with the held piece. When nothing is held
// the next piece is drawn from the bag. A piece coming out of the hold
// slot starts over from the spawn location.
func (e *Engine) HoldCursor() error {
	p := e.mustCursor("holding")
	held, hasHeld := e.held, e.hasHeld
	e.held, e.hasHeld = p.Kind, true
	e.cursor = cursor{}
	if !hasHeld {
		return e.AddCursor()
	}
	return e.spawn(held)
}

// DropTime is the time the cursor takes to fall one row. Based on https://tetris.wiki/Marathon
//
// Time = (0.8-((Level-1)*0.007))^(Level-1)
func (e *Engine) DropTime() time.Duration {
	l := float64(e.level - 1)
	seconds := math.Pow(0.8-l*0.007, l)
	return time.Duration(seconds * float64(time.Second))
}

func (e *Engine) Level() int { return e.level }

// SetLevel sets the gravity level, clamped between 1 and 20.
func (e *Engine) SetLevel(l int) {
	e.level = min(max(l, minLevel), maxLevel)
}

// Lines returns the number of lines cleared so far.
func (e *Engine) Lines() int { return e.lines }

// Cursor returns the falling piece, if any.
func (e *Engine) Cursor() (Piece, bool) { return e.cursor.piece, e.cursor.ok }

// Held returns the kind in the hold slot, if any.
func (e *Engine) Held() (Kind, bool) { return e.held, e.hasHeld }

// Next returns the kind the next spawn will draw.
func (e *Engine) Next() Kind { return e.bag.peek() }

// Ghost returns where the cursor would land after a hard drop.
func (e *Engine) Ghost() (Piece, bool) {
	if !e.cursor.ok {
		return Piece{}, false
	}
	p := e.cursor.piece
	for !e.matrix.IsClipping(p.MovedBy(down)) {
		p = p.MovedBy(down)
	}
	return p, true
}

// Cells iterates over the matrix cells.
func (e *Engine) Cells() iter.Seq2[Coordinate, Color] { return e.matrix.Cells() }

// Matrix returns a copy of the playfield.
func (e *Engine) Matrix() Matrix { return e.matrix }
