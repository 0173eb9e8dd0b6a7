package config

import (
	"fmt"
	"strings"
)

// MaxDigits is the largest supported code length.
const MaxDigits = 16

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a configuration.
type ValidationErrors []*ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidationErrors if any field
// is invalid.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.MQTT.Port < 1 || c.MQTT.Port > 65535 {
		add("mqtt.port", "must be 1-65535, got %d", c.MQTT.Port)
	}
	if c.MQTT.KeepAlive <= 0 {
		add("mqtt.keep_alive", "must be positive, got %s", c.MQTT.KeepAlive)
	}
	if c.MQTT.ReconnectDelay <= 0 {
		add("mqtt.reconnect_delay", "must be positive, got %s", c.MQTT.ReconnectDelay)
	}
	if c.MQTT.Server == "" && !c.MQTT.Discover {
		add("mqtt.server", "required when discovery is disabled")
	}

	topics := map[string]string{
		"topics.state":   c.Topics.State,
		"topics.code":    c.Topics.Code,
		"topics.command": c.Topics.Command,
		"topics.status":  c.Topics.Status,
	}
	for _, field := range []string{"topics.state", "topics.code", "topics.command", "topics.status"} {
		topic := topics[field]
		if topic == "" {
			add(field, "cannot be empty")
		} else if strings.ContainsAny(topic, "+#") {
			add(field, "must not contain wildcards, got %q", topic)
		}
	}

	if c.Keypad.Digits < 1 || c.Keypad.Digits > MaxDigits {
		add("keypad.digits", "must be 1-%d, got %d", MaxDigits, c.Keypad.Digits)
	}
	if c.Keypad.LockDuration <= 0 {
		add("keypad.lock_duration", "must be positive, got %s", c.Keypad.LockDuration)
	}
	if c.Keypad.PublishInterval <= 0 {
		add("keypad.publish_interval", "must be positive, got %s", c.Keypad.PublishInterval)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
