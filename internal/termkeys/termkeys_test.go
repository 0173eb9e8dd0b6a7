package termkeys

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/muurk/keypad/internal/keypad"
)

func waitInterrupted(t *testing.T, r *Reader) {
	t.Helper()
	select {
	case <-r.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("reader was not interrupted")
	}
}

// waitQueued blocks until the reader goroutine has queued n keys.
func waitQueued(t *testing.T, r *Reader, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for len(r.keys) < n {
		if time.Now().After(deadline) {
			t.Fatalf("queued keys = %d, want %d", len(r.keys), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func drain(r *Reader) string {
	var b strings.Builder
	for {
		k, ok := r.PollKey()
		if !ok {
			return b.String()
		}
		b.WriteByte(k)
	}
}

func TestReaderQueuesKeys(t *testing.T) {
	r := NewReader(strings.NewReader("12\x7f3\r"), 0)
	waitInterrupted(t, r) // EOF

	if got, want := drain(r), "12*3#"; got != want {
		t.Errorf("keys = %q, want %q", got, want)
	}
}

func TestReaderStopsAtInterrupt(t *testing.T) {
	r := NewReader(strings.NewReader("1\x0329"), 0)
	waitInterrupted(t, r)

	if got := drain(r); got != "1" {
		t.Errorf("keys = %q, want %q", got, "1")
	}
}

func TestReaderDropsWhenFull(t *testing.T) {
	r := NewReader(strings.NewReader("123456"), 2)
	waitInterrupted(t, r)

	if got := drain(r); got != "12" {
		t.Errorf("keys = %q, want %q", got, "12")
	}
}

func TestPollKeyEmpty(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewReader(pr, 0)
	if k, ok := r.PollKey(); ok {
		t.Errorf("PollKey() = %q, true; want nothing", k)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFlushKeys(t *testing.T) {
	r := NewReader(strings.NewReader("123"), 0)
	waitInterrupted(t, r)

	if got := r.FlushKeys(); got != 3 {
		t.Errorf("FlushKeys() = %d, want 3", got)
	}
	if k, ok := r.PollKey(); ok {
		t.Errorf("PollKey() = %q, true; want nothing after flush", k)
	}
	if got := r.FlushKeys(); got != 0 {
		t.Errorf("FlushKeys() on empty queue = %d, want 0", got)
	}
}

func TestKeysTypedWhileLockedAreDropped(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewReader(pr, 0)
	clock := keypad.NewManualClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	var codes []string
	ctl := keypad.NewController(keypad.Config{
		Clock: clock,
		Keys:  r,
		Codes: keypad.CodeSinkFunc(func(code string) { codes = append(codes, code) }),
	})

	ctl.OnCommand(keypad.Command{Name: keypad.CommandLock, Duration: 2 * time.Second, HasDuration: true})
	clock.Advance(time.Second)
	if _, err := pw.Write([]byte("9")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	waitQueued(t, r, 1)
	ctl.Tick()

	clock.Advance(2 * time.Second)
	ctl.Tick()
	if ctl.Mode() != keypad.ModeNormal {
		t.Fatalf("Mode() = %v, want normal", ctl.Mode())
	}

	if _, err := pw.Write([]byte("\r")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	waitQueued(t, r, 1)
	ctl.Tick()

	if len(codes) != 0 {
		t.Errorf("codes = %q, want none", codes)
	}
	if got := ctl.CodeLength(); got != 0 {
		t.Errorf("CodeLength() = %d, want 0", got)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{'\r', keypad.KeySubmit},
		{'\n', keypad.KeySubmit},
		{0x7f, keypad.KeyBackspace},
		{0x08, keypad.KeyBackspace},
		{'#', '#'},
		{'*', '*'},
		{'5', '5'},
		{'a', 'a'},
	}
	for _, tt := range tests {
		if got := Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
