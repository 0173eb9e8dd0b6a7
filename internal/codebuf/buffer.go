// Package codebuf holds the digits typed on the keypad until they are submitted.
//
// A Buffer has a fixed capacity. Appending to a full buffer discards the
// oldest digit, so a code longer than the capacity always ends up as the last
// N digits typed. Overflow is a normal condition and never an error.
package codebuf

import "errors"

// ErrEmpty is reported by Backspace and Drain when there is nothing buffered.
var ErrEmpty = errors.New("code buffer is empty")

// Buffer is a fixed-capacity ring of characters.
// It is not safe for concurrent use; the control loop owns it.
type Buffer struct {
	items []byte
	head  int // index of the oldest character
	count int
}

// New creates a buffer holding at most capacity characters.
// A capacity below 1 is raised to 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{items: make([]byte, capacity)}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.items)
}

// Len returns the number of buffered characters.
func (b *Buffer) Len() int {
	return b.count
}

// IsEmpty reports whether nothing is buffered.
func (b *Buffer) IsEmpty() bool {
	return b.count == 0
}

// IsFull reports whether the buffer holds Cap characters.
func (b *Buffer) IsFull() bool {
	return b.count == len(b.items)
}

// Append adds c at the tail. When the buffer is full the oldest character is
// dropped and the length stays at capacity. It reports whether a character
// was discarded.
func (b *Buffer) Append(c byte) (discarded bool) {
	if b.IsFull() {
		b.items[b.head] = c
		b.head = (b.head + 1) % len(b.items)
		return true
	}
	b.items[(b.head+b.count)%len(b.items)] = c
	b.count++
	return false
}

// Backspace removes the most recently appended character.
func (b *Buffer) Backspace() error {
	if b.count == 0 {
		return ErrEmpty
	}
	b.count--
	return nil
}

// String returns the buffered characters in insertion order without
// modifying the buffer.
func (b *Buffer) String() string {
	out := make([]byte, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return string(out)
}

// Drain returns the buffered characters in insertion order and empties the
// buffer. On an empty buffer it returns ErrEmpty and changes nothing.
func (b *Buffer) Drain() (string, error) {
	if b.count == 0 {
		return "", ErrEmpty
	}
	s := b.String()
	b.Reset()
	return s, nil
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.head = 0
	b.count = 0
}
