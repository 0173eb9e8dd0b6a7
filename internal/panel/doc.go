// Package panel runs the keypad: it owns the controller, the periodic
// scheduler and the transport, and turns transport events into controller
// signals from the loop goroutine.
//
// A Panel is driven either by Run, which ticks on a wall-clock ticker until
// its context is cancelled, or by calling Step directly (the simulator and
// tests do this).
package panel
