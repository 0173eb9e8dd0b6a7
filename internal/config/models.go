package config

import (
	"time"

	"github.com/google/uuid"
)

// CurrentVersion is the configuration file format version.
const CurrentVersion = 1

// Defaults matching the stock keypad firmware.
const (
	DefaultPort            = 1883
	DefaultDigits          = 4
	DefaultKeepAlive       = 30 * time.Second
	DefaultReconnectDelay  = 3 * time.Second
	DefaultLockDuration    = 60 * time.Second
	DefaultPublishInterval = 10 * time.Minute

	DefaultStateTopic   = "alarm/keypad"
	DefaultCodeTopic    = "alarm/keypad/code"
	DefaultCommandTopic = "alarm/keypad/command"
	DefaultStatusTopic  = "alarm/keypad/status"

	DefaultOnlinePayload  = "online"
	DefaultOfflinePayload = "offline"

	clientIDPrefix = "keypad-"
)

// Config is the whole configuration file.
type Config struct {
	Version int          `yaml:"version"`
	MQTT    MQTTConfig   `yaml:"mqtt"`
	Topics  TopicConfig  `yaml:"topics"`
	Keypad  KeypadConfig `yaml:"keypad"`
}

// MQTTConfig holds broker connection settings.
type MQTTConfig struct {
	Server         string        `yaml:"server"`                  // Broker host; empty = discover via mDNS
	Port           int           `yaml:"port"`                    // Broker port
	Login          string        `yaml:"login,omitempty"`         // Username
	Password       string        `yaml:"password,omitempty"`      // Password
	ClientID       string        `yaml:"client_id,omitempty"`     // Stable client id, generated on first save
	KeepAlive      time.Duration `yaml:"keep_alive"`              // MQTT keep-alive
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`         // Wait before reconnecting
	Discover       bool          `yaml:"discover"`                // Browse mDNS when Server is empty
	DiscoverWait   time.Duration `yaml:"discover_wait,omitempty"` // mDNS browse timeout
}

// TopicConfig holds topic names and presence payloads.
type TopicConfig struct {
	State          string `yaml:"state"`
	Code           string `yaml:"code"`
	Command        string `yaml:"command"`
	Status         string `yaml:"status"`
	OnlinePayload  string `yaml:"online_payload"`
	OfflinePayload string `yaml:"offline_payload"`
}

// KeypadConfig holds input and timing settings.
type KeypadConfig struct {
	Digits          int           `yaml:"digits"`           // Code capacity and number of indicators
	LockDuration    time.Duration `yaml:"lock_duration"`    // Lock length when the command has none
	PublishInterval time.Duration `yaml:"publish_interval"` // State publication period
}

// Default returns a configuration with the stock firmware values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		MQTT: MQTTConfig{
			Port:           DefaultPort,
			KeepAlive:      DefaultKeepAlive,
			ReconnectDelay: DefaultReconnectDelay,
			Discover:       true,
			DiscoverWait:   5 * time.Second,
		},
		Topics: TopicConfig{
			State:          DefaultStateTopic,
			Code:           DefaultCodeTopic,
			Command:        DefaultCommandTopic,
			Status:         DefaultStatusTopic,
			OnlinePayload:  DefaultOnlinePayload,
			OfflinePayload: DefaultOfflinePayload,
		},
		Keypad: KeypadConfig{
			Digits:          DefaultDigits,
			LockDuration:    DefaultLockDuration,
			PublishInterval: DefaultPublishInterval,
		},
	}
}

// EnsureClientID generates a client id if none is set and reports whether
// one was generated.
func (c *Config) EnsureClientID() bool {
	if c.MQTT.ClientID != "" {
		return false
	}
	c.MQTT.ClientID = clientIDPrefix + uuid.NewString()
	return true
}

// BrokerURL returns the tcp:// URL of the configured broker.
func (c *Config) BrokerURL() string {
	return brokerURL(c.MQTT.Server, c.MQTT.Port)
}
