package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Broker represents an MQTT broker found on the network
type Broker struct {
	// Instance is the advertised service instance name (e.g., "Mosquitto")
	Instance string

	// Hostname is the mDNS hostname (e.g., "homeassistant.local.")
	Hostname string

	// IP is the broker address, IPv4 preferred
	IP string

	// Port is the broker port (typically 1883)
	Port int

	// Metadata contains the TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the broker was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the broker
func (b *Broker) String() string {
	return fmt.Sprintf("MQTT broker %q (%s) at %s", b.Instance, b.Hostname, net.JoinHostPort(b.IP, strconv.Itoa(b.Port)))
}

// URL returns the tcp:// URL of the broker
func (b *Broker) URL() string {
	return "tcp://" + net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Broker) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
