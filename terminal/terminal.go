// Package terminal plays a tetris game in a raw mode console.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"tetris/tetris"
	"time"

	"github.com/eiannone/keyboard"
)

const (
	defaultFrameTime = time.Second / 60

	// The console only reports key presses, repeated while the key is held
	// down. Soft drop is released when no repeat arrives in time: the first
	// window covers the initial repeat delay of the OS, the second one the
	// interval between repeats.
	softDropDelay = 500 * time.Millisecond
	softDropHold  = 100 * time.Millisecond
)

var (
	errKeyboardClosed = errors.New("keyboard events channel closed unexpectedly")
	errNoNewGame      = errors.New("terminal: Options.NewGame is required")
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type renderer interface {
	game(*tetris.Engine)
	lobby(message)
	reset()
}

type Options struct {
	// Writer defaults to os.Stdout.
	Writer  io.Writer
	Logger  *slog.Logger
	NoGhost bool
	// NewGame creates a game every time one is started from the lobby.
	NewGame func() *tetris.Game
	// FrameTime is the interval between game updates. Defaults to 60 fps.
	FrameTime time.Duration
}

type Terminal struct {
	render    renderer
	logger    *slog.Logger
	kbCh      <-chan keyboard.KeyEvent
	newGame   func() *tetris.Game
	frameTime time.Duration

	state         clientState
	game          *tetris.Game
	softDrop      bool
	softDropTimer tetris.Timer
}

// New opens the keyboard. Close must be called to give the console back.
func New(o *Options) (*Terminal, error) {
	if o == nil {
		o = &Options{}
	}
	if o.NewGame == nil {
		return nil, errNoNewGame
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r, err := newRender(w, l, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	ft := o.FrameTime
	if ft <= 0 {
		ft = defaultFrameTime
	}
	return &Terminal{
		render:        r,
		logger:        l,
		kbCh:          kb,
		newGame:       o.NewGame,
		frameTime:     ft,
		softDropTimer: tetris.NewTimer(softDropDelay),
	}, nil
}

func (t *Terminal) Close() error {
	return keyboard.Close()
}

// Start shows the lobby and runs until the player quits, the keyboard
// fails or ctx is done. Games are updated once per frame from this goroutine.
func (t *Terminal) Start(ctx context.Context) error {
	t.render.reset()
	t.render.lobby(defaultLobby())

	ticker := time.NewTicker(t.frameTime)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-t.kbCh:
			if !ok {
				t.logger.Error("keyboard events channel closed unexpectedly")
				return errKeyboardClosed
			}
			if event.Err != nil {
				t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
				return fmt.Errorf("keyboard: %w", event.Err)
			}
			if t.handleKey(event) {
				return nil
			}
		case now := <-ticker.C:
			t.frame(now.Sub(last))
			last = now
		}
	}
}

// handleKey reports whether the player asked to quit.
func (t *Terminal) handleKey(event keyboard.KeyEvent) bool {
	if event.Key == keyboard.KeyCtrlC {
		return true
	}
	switch t.state {
	case lobby:
		switch event.Rune {
		case 'p':
			t.start()
		case 'q':
			return true
		}
	case playing:
		a, ok := action(event)
		if !ok {
			return false
		}
		if a == tetris.SoftDrop {
			if t.softDrop {
				t.softDropTimer.SetTarget(softDropHold)
			} else {
				t.game.Queue(tetris.Input{Action: a, State: tetris.Press})
				t.softDrop = true
				t.softDropTimer.SetTarget(softDropDelay)
			}
			t.softDropTimer.Reset()
			return false
		}
		t.game.Queue(tetris.Input{Action: a, State: tetris.Press})
		t.game.Queue(tetris.Input{Action: a, State: tetris.Release})
	}
	return false
}

func (t *Terminal) start() {
	t.game = t.newGame()
	t.state = playing
	t.softDrop = false
	t.softDropTimer.Reset()
	t.render.reset()
	t.logger.Info("game started", slog.String("game_id", t.game.ID))
}

func (t *Terminal) frame(delta time.Duration) {
	if t.state != playing {
		return
	}
	if t.softDrop {
		t.softDropTimer.Update(delta)
		if t.softDropTimer.JustFinished() {
			t.game.Queue(tetris.Input{Action: tetris.SoftDrop, State: tetris.Release})
			t.softDrop = false
		}
	}
	t.game.Update(delta)
	e := t.game.Engine()
	t.render.game(e)
	if t.game.Over() {
		t.state = lobby
		t.render.lobby(gameOver(e.Lines()))
		t.logger.Info("game finished", slog.String("game_id", t.game.ID), slog.Int("lines", e.Lines()))
	}
}

func action(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.SoftDrop, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
		return tetris.RotateClockwise, true
	case event.Rune == 'q':
		return tetris.RotateCounterClockwise, true
	case event.Key == keyboard.KeySpace:
		return tetris.HardDrop, true
	case event.Rune == 'c' || event.Rune == 'w':
		return tetris.Hold, true
	}
	return "", false
}
