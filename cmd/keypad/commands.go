package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/keypad/internal/config"
	"github.com/muurk/keypad/internal/discovery"
	"github.com/muurk/keypad/internal/logging"
	"github.com/muurk/keypad/internal/panel"
	"github.com/muurk/keypad/internal/sim"
	"github.com/muurk/keypad/internal/termkeys"
	"github.com/muurk/keypad/internal/transport"
	"github.com/muurk/keypad/internal/version"
)

// Broker and keypad override flags, shared by run and sim
var (
	serverFlag  string
	portFlag    int
	loginFlag   string
	digitsFlag  int
	offline     bool
	logFile     string
	scanTimeout int
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scanCmd)
}

func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&serverFlag, "server", "", "MQTT broker host (overrides config)")
	cmd.Flags().IntVar(&portFlag, "port", 0, "MQTT broker port (overrides config)")
	cmd.Flags().StringVar(&loginFlag, "login", "", "MQTT username (overrides config)")
	cmd.Flags().IntVar(&digitsFlag, "digits", 0, "Code length (overrides config)")
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.MQTT.Server = serverFlag
	}
	if flags.Changed("port") {
		cfg.MQTT.Port = portFlag
	}
	if flags.Changed("login") {
		cfg.MQTT.Login = loginFlag
	}
	if flags.Changed("digits") {
		cfg.Keypad.Digits = digitsFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.EnsureClientID()
	return cfg, nil
}

// resolveBroker returns the broker URL, browsing mDNS when no server is
// configured.
func resolveBroker(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.MQTT.Server != "" {
		return cfg.BrokerURL(), nil
	}
	if !cfg.MQTT.Discover {
		return "", errors.New("no MQTT server configured and discovery is disabled")
	}

	fmt.Fprintf(os.Stderr, "Searching for an MQTT broker (timeout: %s)...\n", cfg.MQTT.DiscoverWait)
	broker, err := discovery.FindBroker(ctx, cfg.MQTT.DiscoverWait)
	if err != nil {
		return "", fmt.Errorf("no MQTT server configured and discovery failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Using %s\n", broker)
	return broker.URL(), nil
}

func newTransport(cfg *config.Config, brokerURL string) *transport.Client {
	return transport.New(transport.Options{
		BrokerURL:      brokerURL,
		ClientID:       cfg.MQTT.ClientID,
		Username:       cfg.MQTT.Login,
		Password:       cfg.MQTT.Password,
		KeepAlive:      cfg.MQTT.KeepAlive,
		ReconnectDelay: cfg.MQTT.ReconnectDelay,
		Topics: transport.Topics{
			State:          cfg.Topics.State,
			Code:           cfg.Topics.Code,
			Command:        cfg.Topics.Command,
			Status:         cfg.Topics.Status,
			OnlinePayload:  cfg.Topics.OnlinePayload,
			OfflinePayload: cfg.Topics.OfflinePayload,
		},
	})
}

func panelOptions(cfg *config.Config) panel.Options {
	host := panel.LookupHost()
	return panel.Options{
		Digits:          cfg.Keypad.Digits,
		LockDuration:    cfg.Keypad.LockDuration,
		PublishInterval: cfg.Keypad.PublishInterval,
		Host:            host,
		Version:         version.Version,
		Signal:          panel.WirelessSignal(host.Iface),
	}
}

// runCmd runs the keypad headless
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keypad",
	Long: `Run the keypad against the configured MQTT broker.

Keys are read from the terminal: digits append to the code, '#' or Enter
submits it and '*' or Backspace deletes the last digit. Indicator frames are
written to the log at debug level. Press Ctrl+C to stop.`,
	Example: `  # Run with the saved configuration
  keypad run

  # Run against a specific broker with verbose logs
  keypad run --server 192.168.1.10 --log-level debug`,
	RunE: runKeypad,
}

func init() {
	addOverrideFlags(runCmd)
}

func runKeypad(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	brokerURL, err := resolveBroker(ctx, cfg)
	if err != nil {
		return err
	}

	keys, err := termkeys.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer keys.Close()

	if keys.Raw() {
		logging.SetRawTerminal(true)
		defer logging.SetRawTerminal(false)
		if err := logging.Initialize(logLevel); err != nil {
			return err
		}
	}

	// Ctrl+C arrives as a key in raw mode.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-keys.Interrupted():
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := panelOptions(cfg)
	opts.Keys = keys
	opts.Pixels = panel.NewLogPixels(cfg.Keypad.Digits)
	opts.Transport = newTransport(cfg, brokerURL)

	return panel.New(opts).Run(ctx)
}

// simCmd launches the interactive simulator
var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Launch the interactive keypad simulator",
	Long: `Launch a terminal simulator showing the indicator strip.

By default the simulator connects to the configured MQTT broker. With
--offline it runs without a broker and adds local controls to drop the link
and lock the keypad.

Logs are discarded unless --log-file is given, since they would corrupt the
display.`,
	Example: `  # Simulate against the configured broker
  keypad sim

  # Simulate without a broker
  keypad sim --offline

  # Keep a debug log while simulating
  keypad sim --offline --log-file keypad.log --log-level debug`,
	RunE: runSim,
}

func init() {
	addOverrideFlags(simCmd)
	simCmd.Flags().BoolVar(&offline, "offline", false, "Run without a broker")
	simCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}

func runSim(cmd *cobra.Command, args []string) error {
	if logFile != "" {
		if err := logging.InitializeWithOutput(logLevel, logFile); err != nil {
			return err
		}
	} else {
		logging.SetLogger(nil)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := sim.Options{Panel: panelOptions(cfg)}
	if offline {
		opts.Loopback = sim.NewLoopback()
	} else {
		brokerURL, err := resolveBroker(ctx, cfg)
		if err != nil {
			return err
		}
		opts.Panel.Transport = newTransport(cfg, brokerURL)
	}

	model := sim.New(opts)
	if err := model.Start(ctx); err != nil {
		return err
	}
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("simulator error: %w", err)
	}
	return nil
}

// scanCmd browses for MQTT brokers
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for MQTT brokers on the network",
	Long: `Scan for MQTT brokers advertising _mqtt._tcp over mDNS/DNS-SD.

Use the result with 'keypad config set server <ip>' or leave the server
empty to let the keypad pick the first broker it finds.`,
	Example: `  # Scan for 5 seconds (default)
  keypad scan

  # Longer scan for slow networks
  keypad scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	timeout := time.Duration(scanTimeout) * time.Second
	fmt.Printf("Scanning for MQTT brokers (timeout: %s)...\n\n", timeout)

	brokers, err := discovery.ScanForBrokers(timeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(brokers) == 0 {
		fmt.Println("No brokers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the broker advertises _mqtt._tcp (e.g. via Avahi)")
		fmt.Println("  - Check that this host is on the same network segment")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d broker(s):\n\n", len(brokers))
	for i, b := range brokers {
		fmt.Printf("%d. %s\n", i+1, b.Instance)
		fmt.Printf("   Host:    %s\n", b.Hostname)
		fmt.Printf("   Address: %s\n", b.URL())
		if len(b.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", b.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'keypad config set server <ip>' to save a broker")
	return nil
}
