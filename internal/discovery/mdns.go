package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the DNS-SD service type advertised by MQTT brokers
	ServiceType = "_mqtt._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for broker discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default MQTT port
	DefaultPort = 1883
)

// Scanner handles mDNS broker discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForBrokers browses for brokers until the timeout or ctx expires.
func (s *Scanner) ScanForBrokers(ctx context.Context) ([]*Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		brokers []*Broker
	)
	err := s.browse(ctx, func(b *Broker) bool {
		mu.Lock()
		brokers = append(brokers, b)
		mu.Unlock()
		return true
	})
	if err != nil {
		return nil, err
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return dedupe(brokers), nil
}

// FindBroker returns the first broker that answers within the timeout.
func (s *Scanner) FindBroker(ctx context.Context) (*Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Broker, 1)
	err := s.browse(ctx, func(b *Broker) bool {
		select {
		case found <- b:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case b := <-found:
		return b, nil
	case <-ctx.Done():
		select {
		case b := <-found:
			return b, nil
		default:
		}
		return nil, fmt.Errorf("no MQTT broker found within %s", s.Timeout)
	}
}

// browse starts a resolver and calls fn for each broker until fn returns
// false or ctx is done.
func (s *Scanner) browse(ctx context.Context, fn func(*Broker) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				broker := parseServiceEntry(entry)
				if broker == nil {
					continue
				}
				logging.Debug("Broker discovered", zap.String("broker", broker.String()))
				if !fn(broker) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Broker.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Broker {
	if entry == nil {
		return nil
	}

	var ip string
	switch {
	case len(entry.AddrIPv4) > 0:
		ip = entry.AddrIPv4[0].String()
	case len(entry.AddrIPv6) > 0:
		ip = entry.AddrIPv6[0].String()
	default:
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Broker{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// dedupe drops repeated answers for the same address, keeping the first.
func dedupe(brokers []*Broker) []*Broker {
	seen := make(map[string]bool)
	out := make([]*Broker, 0, len(brokers))
	for _, b := range brokers {
		key := b.URL()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, b)
	}
	return out
}

// ScanForBrokers is a convenience function to scan with a custom timeout
func ScanForBrokers(timeout time.Duration) ([]*Broker, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForBrokers(context.Background())
}

// FindBroker returns the first broker found within timeout
func FindBroker(ctx context.Context, timeout time.Duration) (*Broker, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.FindBroker(ctx)
}
