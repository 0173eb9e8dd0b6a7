package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/muurk/keypad/internal/keypad"
)

// MaxLockDuration caps the duration accepted from a lock command.
const MaxLockDuration = 24 * time.Hour

var (
	// ErrMalformed is returned for payloads that are not a JSON object.
	ErrMalformed = errors.New("malformed command payload")
	// ErrNoCommand is returned for JSON objects without a command field.
	ErrNoCommand = errors.New("payload does not contain a command")
)

// commandDocument is the wire form of a command.
type commandDocument struct {
	Command  *string         `json:"command"`
	Duration json.RawMessage `json:"duration,omitempty"`
}

// ParseCommand decodes a command payload.
func ParseCommand(payload []byte) (keypad.Command, error) {
	var doc commandDocument
	if err := json.Unmarshal(bytes.TrimSpace(payload), &doc); err != nil {
		return keypad.Command{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Command == nil {
		return keypad.Command{}, ErrNoCommand
	}

	cmd := keypad.Command{Name: *doc.Command}
	if d, ok := parseDuration(doc.Duration); ok {
		cmd.Duration = d
		cmd.HasDuration = true
	}
	return cmd, nil
}

// parseDuration accepts a JSON number or a numeric string of seconds.
func parseDuration(raw json.RawMessage) (time.Duration, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
	}

	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, false
	}

	d := time.Duration(seconds * float64(time.Second))
	if seconds > MaxLockDuration.Seconds() {
		d = MaxLockDuration
	}
	return d, true
}

// EncodeCommand builds a command payload. Used by tests and the simulator.
func EncodeCommand(cmd keypad.Command) ([]byte, error) {
	doc := map[string]interface{}{"command": cmd.Name}
	if cmd.HasDuration {
		doc["duration"] = int(cmd.Duration / time.Second)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	return data, nil
}
