package panel

import (
	"strings"

	"github.com/muurk/keypad/internal/keypad"
	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
)

// LogPixels is a PixelSink for hosts without an LED strip. It logs the frame
// at debug level whenever it changes.
type LogPixels struct {
	pending keypad.Frame
	shown   keypad.Frame
}

// NewLogPixels creates a sink for n indicators.
func NewLogPixels(n int) *LogPixels {
	return &LogPixels{pending: keypad.NewFrame(n)}
}

// SetIndicator stages a color. Out of range positions are ignored.
func (l *LogPixels) SetIndicator(position int, color keypad.RGB) {
	if position < 0 || position >= len(l.pending) {
		return
	}
	l.pending[position] = color
}

// Show logs the staged frame if it differs from the last one.
func (l *LogPixels) Show() {
	if l.shown != nil && framesEqual(l.shown, l.pending) {
		return
	}
	l.shown = l.pending.Clone()
	logging.Debug("LEDs", zap.String("frame", FormatFrame(l.shown)))
}

// Frame returns the last shown frame.
func (l *LogPixels) Frame() keypad.Frame {
	return l.shown.Clone()
}

// FormatFrame renders a frame as space separated hex colors, "-" for off.
func FormatFrame(f keypad.Frame) string {
	parts := make([]string, len(f))
	for i, c := range f {
		if c.IsOff() {
			parts[i] = "-"
		} else {
			parts[i] = c.Hex()
		}
	}
	return strings.Join(parts, " ")
}

func framesEqual(a, b keypad.Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
