package tetris

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft               Action = "left"      // Moves the cursor one step to the left. Repeats while pressed.
	MoveRight              Action = "right"     // Moves the cursor one step to the right. Repeats while pressed.
	SoftDrop               Action = "softdrop"  // Speeds up the fall while pressed.
	HardDrop               Action = "harddrop"  // Drops the cursor down the stack and locks it.
	RotateClockwise        Action = "rotatecw"  // Rotates the cursor clockwise.
	RotateCounterClockwise Action = "rotateccw" // Rotates the cursor counter-clockwise.
	Hold                   Action = "hold"      // Swaps the cursor with the held piece.
)

type KeyState uint8

const (
	Press KeyState = iota
	Release
)

// Input is an abstract action request coming from the input layer.
type Input struct {
	Action Action
	State  KeyState
}

const (
	defaultLockDelay      = 500 * time.Millisecond
	defaultLockMoves      = 15
	defaultAutoShiftDelay = 167 * time.Millisecond
	defaultAutoRepeatRate = 33 * time.Millisecond
	softDropSpeedUp       = 20
)

type Options struct {
	// LockDelay is the time a grounded piece waits before locking. Defaults to 500ms.
	LockDelay time.Duration
	// LockMoves is how many moves or rotations can restart the lock delay
	// before the piece has to fall again. Defaults to 15.
	LockMoves int
	// AutoShiftDelay is the wait before a held move starts repeating. Defaults to 167ms.
	AutoShiftDelay time.Duration
	// AutoRepeatRate is the interval between repeated moves. Defaults to 33ms.
	AutoRepeatRate time.Duration
	// OnLineClear is called with the complete lines right before they are removed.
	OnLineClear func(lines []int)
	Logger      *slog.Logger
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.LockDelay <= 0 {
		out.LockDelay = defaultLockDelay
	}
	if out.LockMoves <= 0 {
		out.LockMoves = defaultLockMoves
	}
	if out.AutoShiftDelay <= 0 {
		out.AutoShiftDelay = defaultAutoShiftDelay
	}
	if out.AutoRepeatRate <= 0 {
		out.AutoRepeatRate = defaultAutoRepeatRate
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return out
}

// Game turns elapsed time and inputs into engine operations: gravity,
// soft drop, auto shift and the lock delay. It's driven by calling Update
// once per frame and is not safe for concurrent use.
type Game struct {
	ID string

	engine *Engine
	opts   Options
	logger *slog.Logger
	inputs []Input

	tickTimer Timer
	fastTimer Timer
	lockTimer Timer
	moveTimer Timer

	// shift is the move direction being held, 0 when none.
	shift     MoveDirection
	firstMove bool

	lockReset bool
	lockMoves int

	hardDrop bool
	softDrop bool
	canHold  bool
	over     bool
}

func NewGame(e *Engine, o *Options) *Game {
	opts := o.withDefaults()
	id := uuid.New().String()
	return &Game{
		ID:        id,
		engine:    e,
		opts:      opts,
		logger:    opts.Logger.With(slog.String("game_id", id)),
		lockTimer: NewTimer(opts.LockDelay),
		lockMoves: opts.LockMoves,
		canHold:   true,
	}
}

func (g *Game) Engine() *Engine { return g.engine }

// Over reports whether the game finished because a piece couldn't spawn.
func (g *Game) Over() bool { return g.over }

// Queue stores an input to be processed at the start of the next Update.
func (g *Game) Queue(in Input) {
	g.inputs = append(g.inputs, in)
}

// Update advances the game by delta.
func (g *Game) Update(delta time.Duration) {
	if g.over {
		return
	}
	if _, ok := g.engine.Cursor(); !ok && !g.spawn(g.engine.AddCursor) {
		return
	}

	inputs := g.inputs
	g.inputs = nil
	for _, in := range inputs {
		g.handle(in)
		if g.over {
			return
		}
	}
	g.autoShift(delta)

	checkLines := false
	g.updateTimers(delta)

	if g.hardDrop {
		g.engine.HardDrop()
	}

	if g.engine.CursorHasHitBottom() {
		if g.lockReset && g.lockMoves > 0 {
			g.lockTimer.Reset()
			g.lockMoves--
		}
		g.lockReset = false

		if g.hardDrop || g.lockTimer.JustFinished() {
			g.lock()
			checkLines = true
		}
	} else {
		g.lockTimer.Reset()
		g.lockMoves = g.opts.LockMoves
		g.lockReset = false

		tick := g.tickTimer.JustFinished()
		fastTick := g.fastTimer.JustFinished()
		if tick || (g.softDrop && fastTick) {
			g.engine.TickDown()
		}
	}
	g.hardDrop = false

	if checkLines {
		g.engine.LineClear(g.observeLines)
	}
}

func (g *Game) updateTimers(delta time.Duration) {
	dropTime := g.engine.DropTime()
	g.tickTimer.SetTarget(dropTime)
	g.fastTimer.SetTarget(dropTime / softDropSpeedUp)
	g.tickTimer.Update(delta)
	g.fastTimer.Update(delta)
	g.lockTimer.Update(delta)
}

func (g *Game) handle(in Input) {
	switch in.Action {
	case MoveLeft, MoveRight:
		d := Left
		if in.Action == MoveRight {
			d = Right
		}
		if in.State == Release {
			if g.shift == d {
				g.shift = 0
			}
			return
		}
		g.shift = d
		g.firstMove = true
		g.moveTimer = NewTimer(g.opts.AutoShiftDelay)
		g.move(d)
	case RotateClockwise, RotateCounterClockwise:
		if in.State == Release {
			return
		}
		d := Clockwise
		if in.Action == RotateCounterClockwise {
			d = CounterClockwise
		}
		g.lockReset = true
		if err := g.engine.RotateCursor(d); err != nil {
			g.logger.Debug("rotation rejected", slog.String("direction", d.String()), slog.String("error", err.Error()))
		}
	case HardDrop:
		if in.State == Press {
			g.hardDrop = true
		}
	case SoftDrop:
		g.softDrop = in.State == Press
	case Hold:
		if in.State == Press {
			g.hold()
		}
	default:
		g.logger.Warn("unknown action", slog.String("action", string(in.Action)))
	}
}

func (g *Game) move(d MoveDirection) {
	g.lockReset = true
	if err := g.engine.MoveCursor(d); err != nil {
		g.logger.Debug("move rejected", slog.String("direction", d.String()), slog.String("error", err.Error()))
	}
}

// autoShift repeats the held move, first after the auto shift delay and then at the repeat rate.
func (g *Game) autoShift(delta time.Duration) {
	if g.shift == 0 {
		return
	}
	g.moveTimer.Update(delta)
	if !g.moveTimer.JustFinished() {
		return
	}
	if g.firstMove {
		g.firstMove = false
		g.moveTimer.SetTarget(g.opts.AutoRepeatRate)
	}
	g.move(g.shift)
}

// hold swaps the cursor once per piece. It's re-armed when a piece locks.
func (g *Game) hold() {
	if !g.canHold {
		return
	}
	if _, ok := g.engine.Cursor(); !ok {
		return
	}
	if !g.spawn(g.engine.HoldCursor) {
		return
	}
	g.canHold = false
	g.lockTimer.Reset()
	g.lockMoves = g.opts.LockMoves
	g.lockReset = false
	g.tickTimer.Reset()
	g.fastTimer.Reset()
	held, _ := g.engine.Held()
	g.logger.Debug("piece held", slog.String("held", held.String()))
}

// spawn runs an operation that installs a new cursor and ends the game when it blocks out.
func (g *Game) spawn(op func() error) bool {
	if err := op(); err != nil {
		if errors.Is(err, ErrBlockOut) {
			g.over = true
			g.logger.Info("game over", slog.Int("lines", g.engine.Lines()), slog.String("error", err.Error()))
			return false
		}
		panic(err)
	}
	if p, ok := g.engine.Cursor(); ok {
		g.logger.Debug("piece spawned", slog.String("piece", p.String()))
	}
	return true
}

func (g *Game) lock() {
	p, _ := g.engine.Cursor()
	g.engine.PlaceCursor()
	g.canHold = true
	g.lockTimer.Reset()
	g.lockMoves = g.opts.LockMoves
	g.logger.Debug("piece locked", slog.String("piece", p.String()), slog.String("color", p.Color().String()))
}

func (g *Game) observeLines(lines []int) {
	g.logger.Debug("lines cleared", slog.Any("lines", lines))
	if g.opts.OnLineClear != nil {
		g.opts.OnLineClear(lines)
	}
}
