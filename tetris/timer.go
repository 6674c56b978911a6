package tetris

import "time"

// Timer accumulates elapsed time and fires every time it reaches its target.
// The overflow is kept for the next period so the cadence doesn't drift.
type Timer struct {
	accumulator  time.Duration
	target       time.Duration
	justFinished bool
}

func NewTimer(target time.Duration) Timer {
	return Timer{target: target}
}

func (t *Timer) Update(delta time.Duration) {
	t.accumulator += delta
	t.justFinished = t.accumulator >= t.target
	if t.justFinished {
		t.accumulator -= t.target
	}
}

// SetTarget changes the period. The accumulated time is kept.
func (t *Timer) SetTarget(target time.Duration) { t.target = target }

func (t *Timer) Reset() {
	t.accumulator = 0
	t.justFinished = false
}

// JustFinished reports whether the last Update reached the target.
func (t *Timer) JustFinished() bool { return t.justFinished }
