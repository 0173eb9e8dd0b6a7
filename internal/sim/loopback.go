package sim

import (
	"context"
	"time"

	"github.com/muurk/keypad/internal/keypad"
	"github.com/muurk/keypad/internal/logging"
	"github.com/muurk/keypad/internal/panel"
	"github.com/muurk/keypad/internal/protocol"
	"github.com/muurk/keypad/internal/transport"
	"go.uber.org/zap"
)

var _ panel.Transport = (*Loopback)(nil)

// Loopback is an in-process transport. Codes and state documents are kept
// in memory and connectivity is switched by hand.
type Loopback struct {
	events chan transport.Event
	up     bool
	codes  []string
	state  *protocol.State
	states int
}

// NewLoopback creates a disconnected loopback transport.
func NewLoopback() *Loopback {
	return &Loopback{events: make(chan transport.Event, transport.DefaultEventBuffer)}
}

// Connect brings the link up.
func (l *Loopback) Connect(context.Context) error {
	l.SetLink(true)
	return nil
}

// Events implements panel.Transport.
func (l *Loopback) Events() <-chan transport.Event {
	return l.events
}

// SubmitCode records a submitted code.
func (l *Loopback) SubmitCode(code string) {
	logging.Info("Loopback: code submitted", zap.Int("length", len(code)))
	l.codes = append(l.codes, code)
}

// PublishState records the latest state document.
func (l *Loopback) PublishState(state protocol.State) {
	l.state = &state
	l.states++
}

// Close brings the link down without notifying the keypad.
func (l *Loopback) Close() {
	l.up = false
}

// SetLink changes connectivity and notifies the keypad.
func (l *Loopback) SetLink(up bool) {
	l.up = up
	if up {
		l.emit(transport.Event{Kind: transport.EventConnected})
	} else {
		l.emit(transport.Event{Kind: transport.EventDisconnected})
	}
}

// LinkUp reports the simulated link state.
func (l *Loopback) LinkUp() bool {
	return l.up
}

// Lock sends a lock command. A zero duration sends the command without one.
func (l *Loopback) Lock(d time.Duration) {
	cmd := keypad.Command{Name: keypad.CommandLock}
	if d > 0 {
		cmd.Duration = d
		cmd.HasDuration = true
	}
	l.emit(transport.Event{Kind: transport.EventCommand, Command: cmd})
}

// Codes returns every code submitted so far.
func (l *Loopback) Codes() []string {
	return append([]string(nil), l.codes...)
}

// LastState returns the last published state document.
func (l *Loopback) LastState() (protocol.State, bool) {
	if l.state == nil {
		return protocol.State{}, false
	}
	return *l.state, true
}

// StatesPublished returns how many state documents were published.
func (l *Loopback) StatesPublished() int {
	return l.states
}

func (l *Loopback) emit(ev transport.Event) {
	select {
	case l.events <- ev:
	default:
		logging.Warn("Loopback: event queue full", zap.String("event", ev.Kind.String()))
	}
}
