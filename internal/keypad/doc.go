// Package keypad implements the input state machine of the alarm keypad.
//
// The Controller owns the bounded code buffer, the overlay mode and the
// indicator frame. It is driven by a single control loop calling Tick once per
// iteration; every operation completes within that call and nothing sleeps.
//
// # Overlay modes
//
//	Normal   keys are processed, indicators show how many digits are typed
//	Waiting  transport is disconnected, keys ignored, blue light bounces
//	Locked   remote lock is active, keys ignored, all indicators flash red
//
// Locked takes precedence over Waiting. A disconnect during a lock is
// remembered and the keypad returns to Waiting, not Normal, when the lock
// expires while the link is still down.
//
// # Iteration order
//
// Tick runs, in order: due periodic callbacks, lock expiry, the animation for
// the current mode, one key poll (Normal only), and finally pushes the frame
// to the PixelSink. Lock expiry runs before key polling so that an expired
// lock accepts input in the same iteration.
//
// # Collaborators
//
// The controller never performs I/O itself. It polls a KeySource, hands
// completed codes to a CodeSink and writes indicator colors to a PixelSink.
// Transport callbacks must not call into the controller from another
// goroutine; they are queued and replayed by the loop (see package panel).
package keypad
