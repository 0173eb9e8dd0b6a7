// Package sim is an interactive terminal simulator for the keypad.
//
// It renders the indicator strip and accepts key presses from the keyboard,
// driving the same panel and controller the headless runner uses. The
// bubbletea update loop is the control loop: every tick message runs one
// panel step, so the keypad core is still only touched from one goroutine.
//
// With a Loopback transport the simulator runs without a broker and offers
// local controls to drop the link and send lock commands.
package sim
