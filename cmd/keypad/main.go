// Keypad is the alarm keypad runtime.
//
// It reads codes from a numeric keypad, shows entry progress and alarm
// status on an indicator strip, and exchanges codes, commands and state with
// an alarm controller over MQTT.
//
// Usage:
//
//	keypad [command] [flags]
//
// See 'keypad --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/keypad/internal/logging"
	"github.com/muurk/keypad/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "keypad",
	Short: "MQTT alarm keypad",
	Long: `A keypad for an MQTT driven alarm system.

Digits typed on the keypad are collected into a code and published to the
alarm controller when '#' is pressed ('*' deletes the last digit). The
indicator strip shows how many digits were entered, a blue sweep while the
broker is unreachable, and a red blink while the controller has locked the
keypad.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: OS config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.LogLevelEnvVar)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("keypad %s\n", version.Full())
	},
}
