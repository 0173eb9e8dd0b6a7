package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// State is the device state document published periodically.
type State struct {
	IP      string `json:"ip"`
	MAC     string `json:"mac"`
	RSSI    string `json:"rssi,omitempty"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// NewState builds a state document for the given uptime.
func NewState(ip, mac, rssi string, uptime time.Duration, version string) State {
	return State{
		IP:      ip,
		MAC:     mac,
		RSSI:    rssi,
		Uptime:  FormatUptime(uptime),
		Version: version,
	}
}

// Marshal encodes the state document.
func (s State) Marshal() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

// FormatUptime renders d as days, then THH:MM:SS.mmm, e.g. "2T03:04:05.006".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	days := ms / (24 * 3600 * 1000)
	ms -= days * 24 * 3600 * 1000
	hours := ms / (3600 * 1000)
	ms -= hours * 3600 * 1000
	mins := ms / (60 * 1000)
	ms -= mins * 60 * 1000
	secs := ms / 1000
	ms -= secs * 1000
	return fmt.Sprintf("%dT%02d:%02d:%02d.%03d", days, hours, mins, secs, ms)
}
