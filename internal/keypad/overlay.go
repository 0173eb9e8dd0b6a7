package keypad

import (
	"fmt"
	"time"
)

// Mode is the overlay mode gating input and animation.
type Mode uint8

const (
	// ModeNormal accepts keys and shows the fill indicator.
	ModeNormal Mode = iota
	// ModeWaiting is active while the transport is disconnected.
	ModeWaiting
	// ModeLocked is active until a remote lock expires.
	ModeLocked
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeWaiting:
		return "waiting"
	case ModeLocked:
		return "locked"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Transition describes a mode change. From == To means nothing changed.
type Transition struct {
	From Mode
	To   Mode
}

// Changed reports whether the mode actually changed.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Overlay is the overlay state machine. Times are offsets from the
// controller's start so they are monotonic and never zero-valued by accident.
//
// The lock deadline is only meaningful in ModeLocked, so a keypad can never be
// locked and waiting at the same time. The link state is kept separately to
// decide where an expiring lock returns to.
type Overlay struct {
	mode    Mode
	since   time.Duration // when the current mode was entered
	lockEnd time.Duration // valid in ModeLocked only
	linkUp  bool
}

// NewOverlay returns an overlay in ModeNormal with the link up.
func NewOverlay() *Overlay {
	return &Overlay{mode: ModeNormal, linkUp: true}
}

// Mode returns the active mode.
func (o *Overlay) Mode() Mode {
	return o.mode
}

// AcceptsInput reports whether key events may reach the entry controller.
func (o *Overlay) AcceptsInput() bool {
	return o.mode == ModeNormal
}

// LinkUp reports the last connectivity signal received.
func (o *Overlay) LinkUp() bool {
	return o.linkUp
}

// Since returns when the active mode was entered.
func (o *Overlay) Since() time.Duration {
	return o.since
}

// LockEnd returns the lock deadline and whether a lock is active.
func (o *Overlay) LockEnd() (time.Duration, bool) {
	if o.mode != ModeLocked {
		return 0, false
	}
	return o.lockEnd, true
}

// Disconnected handles the transport disconnect signal. While locked the
// disconnect is only recorded.
func (o *Overlay) Disconnected(now time.Duration) Transition {
	o.linkUp = false
	if o.mode == ModeNormal {
		return o.enter(ModeWaiting, now)
	}
	return Transition{From: o.mode, To: o.mode}
}

// Connected handles the transport connect signal. An active lock is kept.
func (o *Overlay) Connected(now time.Duration) Transition {
	o.linkUp = true
	if o.mode == ModeWaiting {
		return o.enter(ModeNormal, now)
	}
	return Transition{From: o.mode, To: o.mode}
}

// Lock locks the keypad until now+d. A lock received while already locked
// replaces the deadline.
func (o *Overlay) Lock(now, d time.Duration) Transition {
	if d < 0 {
		d = 0
	}
	o.lockEnd = now + d
	if o.mode == ModeLocked {
		return Transition{From: ModeLocked, To: ModeLocked}
	}
	return o.enter(ModeLocked, now)
}

// Expire ends an active lock once now is past its deadline. The keypad goes
// back to Waiting if the link dropped during the lock.
func (o *Overlay) Expire(now time.Duration) Transition {
	if o.mode != ModeLocked || now <= o.lockEnd {
		return Transition{From: o.mode, To: o.mode}
	}
	o.lockEnd = 0
	if !o.linkUp {
		return o.enter(ModeWaiting, now)
	}
	return o.enter(ModeNormal, now)
}

func (o *Overlay) enter(m Mode, now time.Duration) Transition {
	t := Transition{From: o.mode, To: m}
	o.mode = m
	o.since = now
	return t
}
