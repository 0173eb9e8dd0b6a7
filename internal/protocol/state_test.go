package protocol

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0T00:00:00.000"},
		{1500 * time.Millisecond, "0T00:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "0T01:02:03.004"},
		{50*time.Hour + 5*time.Second, "2T02:00:05.000"},
		{-time.Second, "0T00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatUptime(tt.in); got != tt.want {
				t.Errorf("FormatUptime(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStateMarshal(t *testing.T) {
	s := NewState("10.0.0.7", "AA:BB:CC:DD:EE:FF", "", 90*time.Second, "v1.2.3")

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("state is not a JSON object: %v", err)
	}

	want := map[string]string{
		"ip":      "10.0.0.7",
		"mac":     "AA:BB:CC:DD:EE:FF",
		"uptime":  "0T00:01:30.000",
		"version": "v1.2.3",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %s = %q, want %q", k, fields[k], v)
		}
	}
	if _, ok := fields["rssi"]; ok {
		t.Error("rssi should be omitted when unknown")
	}
}
