// Package logging provides structured logging for the keypad.
//
// This package wraps a global zap logger with convenience functions for the
// common log lines of the keypad: key presses, overlay mode changes and MQTT
// traffic.
//
// # Log Levels
//
//   - Debug: key-level detail, empty-buffer no-ops, payload hex dumps
//   - Info: submissions, mode changes, connects, published messages
//   - Warn: unknown commands, malformed payloads, dropped events
//   - Error: transport and configuration failures
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// With an empty level the KEYPAD_LOG_LEVEL environment variable is used. If
// that is unset too, logging is silent.
//
// # Specialized Logging
//
//	logging.LogKey('7', "append", 3, false)
//	logging.LogModeChange("normal", "locked", "lock command")
//	logging.LogMQTTMessage("received", "alarm/keypad/command", 0, false, payload)
//
// Codes are never logged, only their length.
package logging
