package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/keypad/internal/config"
)

var forceInit bool

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the keypad configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after applying the .env file and KEYPAD_MQTT_*
environment variables. The password is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.MQTT.Password != "" {
			cfg.MQTT.Password = "********"
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
		}

		cfg := config.Default()
		cfg.EnsureClientID()
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (client id %s)\n", path, cfg.MQTT.ClientID)
		return nil
	},
}

// settable lists the keys accepted by 'config set'.
var settable = map[string]func(*config.Config, string) error{
	"server":   func(c *config.Config, v string) error { c.MQTT.Server = v; return nil },
	"login":    func(c *config.Config, v string) error { c.MQTT.Login = v; return nil },
	"password": func(c *config.Config, v string) error { c.MQTT.Password = v; return nil },
	"client-id": func(c *config.Config, v string) error {
		c.MQTT.ClientID = v
		return nil
	},
	"port":             setInt(func(c *config.Config) *int { return &c.MQTT.Port }),
	"digits":           setInt(func(c *config.Config) *int { return &c.Keypad.Digits }),
	"keep-alive":       setDuration(func(c *config.Config) *time.Duration { return &c.MQTT.KeepAlive }),
	"reconnect-delay":  setDuration(func(c *config.Config) *time.Duration { return &c.MQTT.ReconnectDelay }),
	"lock-duration":    setDuration(func(c *config.Config) *time.Duration { return &c.Keypad.LockDuration }),
	"publish-interval": setDuration(func(c *config.Config) *time.Duration { return &c.Keypad.PublishInterval }),
	"discover": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", v)
		}
		c.MQTT.Discover = b
		return nil
	},
	"state-topic":   func(c *config.Config, v string) error { c.Topics.State = v; return nil },
	"code-topic":    func(c *config.Config, v string) error { c.Topics.Code = v; return nil },
	"command-topic": func(c *config.Config, v string) error { c.Topics.Command = v; return nil },
	"status-topic":  func(c *config.Config, v string) error { c.Topics.Status = v; return nil },
}

func setInt(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		*field(c) = n
		return nil
	}
}

func setDuration(field func(*config.Config) *time.Duration) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q (e.g. 30s, 10m)", v)
		}
		*field(c) = d
		return nil
	}
}

func settableKeys() string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value and save the file.

The file is read without environment overrides so that values from .env or
KEYPAD_MQTT_* variables are never written back.`,
	Example: `  keypad config set server 192.168.1.10
  keypad config set port 8883
  keypad config set lock-duration 2m`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	set, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown key %q (valid keys: %s)", key, settableKeys())
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := set(cfg, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.EnsureClientID()

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Set %s\n", key)
	return nil
}

func configFilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
