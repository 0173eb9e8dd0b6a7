package keypad

import (
	"errors"

	"github.com/muurk/keypad/internal/codebuf"
	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
)

const (
	// KeySubmit drains the buffer and submits the code.
	KeySubmit byte = '#'
	// KeyBackspace removes the last digit.
	KeyBackspace byte = '*'
)

// Action is what a key does to the code buffer.
type Action uint8

const (
	// ActionNone is returned for symbols outside the keypad alphabet.
	ActionNone Action = iota
	ActionAppend
	ActionBackspace
	ActionSubmit
)

// String returns the action name used in logs.
func (a Action) String() string {
	switch a {
	case ActionAppend:
		return "append"
	case ActionBackspace:
		return "backspace"
	case ActionSubmit:
		return "submit"
	default:
		return "none"
	}
}

// Classify maps a keypad symbol to its action. Digits append, '*' is
// backspace and '#' is submit. Anything else is ActionNone.
func Classify(key byte) Action {
	switch {
	case key == KeySubmit:
		return ActionSubmit
	case key == KeyBackspace:
		return ActionBackspace
	case key >= '0' && key <= '9':
		return ActionAppend
	default:
		return ActionNone
	}
}

// Entry applies key events to the code buffer and hands completed codes to
// the sink. It does not look at the overlay mode; the controller only calls
// it in Normal mode.
type Entry struct {
	buf  *codebuf.Buffer
	sink CodeSink
}

// NewEntry creates an entry controller over buf.
func NewEntry(buf *codebuf.Buffer, sink CodeSink) *Entry {
	return &Entry{buf: buf, sink: sink}
}

// Handle processes one key and returns what was done with it.
func (e *Entry) Handle(key byte) Action {
	action := Classify(key)

	switch action {
	case ActionSubmit:
		code, err := e.buf.Drain()
		if errors.Is(err, codebuf.ErrEmpty) {
			logging.Debug("The code is empty, nothing to send")
			break
		}
		logging.Info("Submitting code", zap.Int("length", len(code)))
		if e.sink != nil {
			e.sink.SubmitCode(code)
		}

	case ActionBackspace:
		if err := e.buf.Backspace(); err != nil {
			logging.Debug("Backspace on empty code")
		}

	case ActionAppend:
		if e.buf.Append(key) {
			logging.Debug("Code buffer full, oldest digit discarded")
		}

	default:
		logging.Warn("Ignoring key outside keypad alphabet",
			zap.String("key", string(rune(key))),
		)
	}

	logging.LogKey(key, action.String(), e.buf.Len(), e.buf.IsFull())
	return action
}
