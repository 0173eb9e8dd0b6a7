package transport

import "github.com/muurk/keypad/internal/keypad"

// EventKind identifies an Event.
type EventKind int

const (
	// EventConnected is emitted after a (re)connect once subscriptions are set up.
	EventConnected EventKind = iota
	// EventDisconnected is emitted when the connection is lost.
	EventDisconnected
	// EventCommand carries a decoded command.
	EventCommand
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Event is a transport notification for the control loop.
type Event struct {
	Kind    EventKind
	Command keypad.Command // EventCommand only
	Err     error          // EventDisconnected only, may be nil
}
