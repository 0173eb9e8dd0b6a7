// Package transport connects the keypad to the alarm controller over MQTT.
//
// The client publishes completed codes and the device state, keeps a retained
// presence flag on the status topic (with a last-will "offline"), and
// subscribes to the command topic.
//
// Paho delivers callbacks on its own goroutines. None of them touch the
// keypad: connects, disconnects and decoded commands are turned into Events
// on a buffered channel that the control loop drains once per iteration.
// When the loop falls behind and the channel is full, events are dropped and
// counted rather than blocking the network goroutine.
//
// Publishing never blocks the caller. The delivery token is awaited on a
// separate goroutine and failures are logged.
package transport
