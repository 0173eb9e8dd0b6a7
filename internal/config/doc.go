// Package config manages the keypad configuration file.
//
// The configuration replaces the flat key/value blob the keypad keeps on
// flash: broker address and credentials, code length, topic names and
// timing. It is stored as YAML in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/keypad/config.yaml or $HOME/.config/keypad/config.yaml
//   - macOS: $HOME/.config/keypad/config.yaml
//   - Windows: %LOCALAPPDATA%\keypad\config.yaml
//
// # Precedence
//
// Values are resolved in this order, later wins:
//  1. built-in defaults (Default)
//  2. the YAML file
//  3. a .env file in the working directory, then the process environment
//     (KEYPAD_MQTT_SERVER, KEYPAD_MQTT_PORT, KEYPAD_MQTT_LOGIN, KEYPAD_MQTT_PASSWORD)
//  4. command line flags (applied by the caller)
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.MQTT.Server = "broker.local"
//	if err := cfg.Save(""); err != nil {
//	    log.Fatal(err)
//	}
//
// # Security
//
// The broker password is stored in plain text, like on the device itself.
// The file is written with 0600 permissions.
package config
