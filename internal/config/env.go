package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the file.
const (
	EnvMQTTServer   = "KEYPAD_MQTT_SERVER"
	EnvMQTTPort     = "KEYPAD_MQTT_PORT"
	EnvMQTTLogin    = "KEYPAD_MQTT_LOGIN"
	EnvMQTTPassword = "KEYPAD_MQTT_PASSWORD"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// LoadDotEnv loads DotEnvFile into the process environment without
// overwriting variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(DotEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}
	return nil
}

// ApplyEnv loads .env and applies the KEYPAD_MQTT_* overrides.
func (c *Config) ApplyEnv() error {
	if err := LoadDotEnv(); err != nil {
		return err
	}
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMQTTServer); ok && v != "" {
		c.MQTT.Server = v
	}
	if v, ok := lookup(EnvMQTTPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMQTTPort, v, err)
		}
		c.MQTT.Port = port
	}
	if v, ok := lookup(EnvMQTTLogin); ok {
		c.MQTT.Login = v
	}
	if v, ok := lookup(EnvMQTTPassword); ok {
		c.MQTT.Password = v
	}
	return nil
}
