package keypad

import "time"

const (
	// WaitingStep is how long the waiting light stays on one position.
	WaitingStep = 100 * time.Millisecond
	// BlinkStep is the duration of one on or off phase of the lock flash.
	BlinkStep = 250 * time.Millisecond
)

// WaitingPosition returns the lit position of the bounce animation after
// elapsed time in Waiting, and whether the light is moving forward. The light
// starts at 0 moving forward, reverses on the last position and again on 0.
func WaitingPosition(elapsed time.Duration, n int) (pos int, forward bool) {
	if n <= 1 || elapsed < 0 {
		return 0, true
	}
	period := int64(2 * (n - 1))
	step := int64(elapsed/WaitingStep) % period
	if step < int64(n-1) {
		return int(step), true
	}
	return int(period - step), false
}

// BlinkLit reports whether the lock flash is lit after elapsed time in
// Locked. Odd 250ms ticks are lit, even ticks are dark.
func BlinkLit(elapsed time.Duration) bool {
	if elapsed < 0 {
		return false
	}
	return (elapsed/BlinkStep)%2 == 1
}

// RenderWaiting draws the bounce animation into f.
func RenderWaiting(f Frame, elapsed time.Duration) {
	pos, _ := WaitingPosition(elapsed, len(f))
	for i := range f {
		if i == pos {
			f[i] = ColorWaiting
		} else {
			f[i] = ColorOff
		}
	}
}

// RenderLocked draws the lock flash into f.
func RenderLocked(f Frame, elapsed time.Duration) {
	if BlinkLit(elapsed) {
		f.Fill(ColorAlert)
		return
	}
	f.Clear()
}

// RenderFill lights the first filled positions of f, the rest are off.
func RenderFill(f Frame, filled int) {
	for i := range f {
		if i < filled {
			f[i] = ColorFill
		} else {
			f[i] = ColorOff
		}
	}
}

// Render draws the animation for mode. Normal mode is not animated and leaves
// f untouched; the controller renders the fill indicator instead.
func Render(f Frame, mode Mode, elapsed time.Duration) {
	switch mode {
	case ModeWaiting:
		RenderWaiting(f, elapsed)
	case ModeLocked:
		RenderLocked(f, elapsed)
	}
}
