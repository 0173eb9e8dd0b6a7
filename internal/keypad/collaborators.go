package keypad

import "time"

// KeySource yields at most one key symbol per call without blocking.
type KeySource interface {
	PollKey() (key byte, ok bool)
}

// KeyFlusher is implemented by key sources that buffer presses. While the
// keypad is not in Normal mode the controller calls FlushKeys every
// iteration, so presses made then are lost as on an unscanned key matrix.
type KeyFlusher interface {
	FlushKeys() int
}

// CodeSink receives completed codes, exactly as typed, 1..capacity digits.
type CodeSink interface {
	SubmitCode(code string)
}

// PixelSink receives the indicator frame once per loop iteration.
// SetIndicator is called for every position, then Show commits them.
type PixelSink interface {
	SetIndicator(position int, color RGB)
	Show()
}

// PeriodicRunner runs callbacks that are due at now. See package scheduler.
type PeriodicRunner interface {
	RunDue(now time.Time) int
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func() (byte, bool)

// PollKey calls f.
func (f KeySourceFunc) PollKey() (byte, bool) { return f() }

// CodeSinkFunc adapts a function to CodeSink.
type CodeSinkFunc func(code string)

// SubmitCode calls f.
func (f CodeSinkFunc) SubmitCode(code string) { f(code) }
