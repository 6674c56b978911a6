package tetris

import "math/rand/v2"

// NewTestRand returns a deterministic random source.
func NewTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// NewTestEngine creates an engine with a cursor of the given kind at the spawn location.
func NewTestEngine(k Kind) *Engine {
	e := NewEngine(NewTestRand())
	if err := e.spawn(k); err != nil {
		panic(err)
	}
	return e
}

// NewTestGame creates a game around a test engine with a cursor of the given kind.
func NewTestGame(k Kind, o *Options) *Game {
	return NewGame(NewTestEngine(k), o)
}

// Fill sets the given cells of the engine's matrix with the color of k.
func (e *Engine) Fill(k Kind, cells ...Coordinate) {
	for _, c := range cells {
		e.matrix.Set(c, k.Color())
	}
}
