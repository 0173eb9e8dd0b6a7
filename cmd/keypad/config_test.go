package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/keypad/internal/config"
)

func TestConfigSet(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { configPath = "" })

	steps := [][]string{
		{"server", "broker.local"},
		{"port", "8883"},
		{"digits", "6"},
		{"lock-duration", "2m"},
		{"discover", "false"},
	}
	for _, args := range steps {
		if err := runConfigSet(configSetCmd, args); err != nil {
			t.Fatalf("config set %v: %v", args, err)
		}
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.MQTT.Server != "broker.local" {
		t.Errorf("Server = %q, want broker.local", cfg.MQTT.Server)
	}
	if cfg.MQTT.Port != 8883 {
		t.Errorf("Port = %d, want 8883", cfg.MQTT.Port)
	}
	if cfg.Keypad.Digits != 6 {
		t.Errorf("Digits = %d, want 6", cfg.Keypad.Digits)
	}
	if cfg.Keypad.LockDuration != 2*time.Minute {
		t.Errorf("LockDuration = %v, want 2m", cfg.Keypad.LockDuration)
	}
	if cfg.MQTT.Discover {
		t.Error("Discover = true, want false")
	}
	if !strings.HasPrefix(cfg.MQTT.ClientID, "keypad-") {
		t.Errorf("ClientID = %q, want keypad- prefix", cfg.MQTT.ClientID)
	}
}

func TestConfigSetErrors(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { configPath = "" })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"colour", "red"}, "unknown key"},
		{"bad number", []string{"port", "abc"}, "invalid number"},
		{"bad duration", []string{"lock-duration", "soon"}, "invalid duration"},
		{"bad bool", []string{"discover", "maybe"}, "invalid boolean"},
		{"fails validation", []string{"digits", "40"}, "keypad.digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runConfigSet(configSetCmd, tt.args)
			if err == nil {
				t.Fatal("runConfigSet() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestSettableKeys(t *testing.T) {
	keys := settableKeys()
	for _, k := range []string{"server", "port", "digits", "publish-interval"} {
		if !strings.Contains(keys, k) {
			t.Errorf("settableKeys() = %q, missing %q", keys, k)
		}
	}
}
