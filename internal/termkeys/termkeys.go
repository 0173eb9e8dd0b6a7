// Package termkeys reads keypad symbols from a terminal.
//
// The terminal is put into raw mode so single key presses arrive without a
// newline. A background goroutine reads bytes into a bounded queue and
// PollKey takes at most one without blocking, which is what the control loop
// expects from a keypad matrix scan.
package termkeys

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/muurk/keypad/internal/keypad"
	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// DefaultBuffer is the number of key presses queued before new ones are dropped.
const DefaultBuffer = 32

const (
	keyInterrupt = 0x03 // ctrl+c
	keyEOT       = 0x04 // ctrl+d
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
)

// Reader is a keypad.KeySource backed by a byte stream.
type Reader struct {
	keys      chan byte
	interrupt chan struct{}
	once      sync.Once

	fd      int
	restore *term.State
}

var (
	_ keypad.KeySource  = (*Reader)(nil)
	_ keypad.KeyFlusher = (*Reader)(nil)
)

// NewReader starts reading keys from src.
func NewReader(src io.Reader, buffer int) *Reader {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	r := &Reader{
		keys:      make(chan byte, buffer),
		interrupt: make(chan struct{}),
		fd:        -1,
	}
	go r.read(src)
	return r
}

// Open puts f into raw mode when it is a terminal and starts reading keys.
// Close restores the terminal.
func Open(f *os.File) (*Reader, error) {
	fd := int(f.Fd())
	var state *term.State
	if term.IsTerminal(fd) {
		s, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		state = s
	}

	r := NewReader(f, DefaultBuffer)
	r.fd = fd
	r.restore = state
	return r, nil
}

// PollKey returns the next queued key, if any.
func (r *Reader) PollKey() (byte, bool) {
	select {
	case k := <-r.keys:
		return k, true
	default:
		return 0, false
	}
}

// FlushKeys discards every queued key and returns how many were dropped.
func (r *Reader) FlushKeys() int {
	n := 0
	for {
		select {
		case <-r.keys:
			n++
		default:
			return n
		}
	}
}

// Interrupted is closed when ctrl+c or ctrl+d is read, or the input ends.
func (r *Reader) Interrupted() <-chan struct{} {
	return r.interrupt
}

// Raw reports whether the terminal was switched to raw mode.
func (r *Reader) Raw() bool {
	return r.restore != nil
}

// Close restores the terminal state. The reader goroutine exits when the
// underlying stream does.
func (r *Reader) Close() error {
	if r.restore == nil {
		return nil
	}
	err := term.Restore(r.fd, r.restore)
	r.restore = nil
	return err
}

func (r *Reader) read(src io.Reader) {
	buf := make([]byte, 16)
	for {
		n, err := src.Read(buf)
		for _, b := range buf[:n] {
			if b == keyInterrupt || b == keyEOT {
				r.stop()
				return
			}
			r.push(Translate(b))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Warn("Key input failed", zap.Error(err))
			}
			r.stop()
			return
		}
	}
}

func (r *Reader) push(k byte) {
	select {
	case r.keys <- k:
	default:
		logging.Debug("Key queue full, dropping key press")
	}
}

func (r *Reader) stop() {
	r.once.Do(func() { close(r.interrupt) })
}

// Translate maps terminal keys onto the keypad alphabet: Enter submits and
// Backspace deletes. Everything else passes through unchanged.
func Translate(b byte) byte {
	switch b {
	case '\r', '\n':
		return keypad.KeySubmit
	case keyBackspace, keyCtrlH:
		return keypad.KeyBackspace
	default:
		return b
	}
}
