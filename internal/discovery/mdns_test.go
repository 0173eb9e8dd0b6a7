package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func newEntry(instance, host string, port int, v4 []net.IP, v6 []net.IP, txt []string) *zeroconf.ServiceEntry {
	entry := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	entry.HostName = host
	entry.Port = port
	entry.AddrIPv4 = v4
	entry.AddrIPv6 = v6
	entry.Text = txt
	return entry
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "mosquitto with IPv4",
			entry:    newEntry("Mosquitto", "nas.local.", 1883, []net.IP{net.ParseIP("192.168.1.10")}, nil, []string{"version=2.0"}),
			wantIP:   "192.168.1.10",
			wantPort: 1883,
		},
		{
			name:     "TLS port",
			entry:    newEntry("Secure", "broker.local.", 8883, []net.IP{net.ParseIP("10.0.0.5")}, nil, nil),
			wantIP:   "10.0.0.5",
			wantPort: 8883,
		},
		{
			name:     "missing port uses default",
			entry:    newEntry("NoPort", "broker.local.", 0, []net.IP{net.ParseIP("10.0.0.6")}, nil, nil),
			wantIP:   "10.0.0.6",
			wantPort: DefaultPort,
		},
		{
			name:     "IPv6 fallback",
			entry:    newEntry("V6", "broker.local.", 1883, nil, []net.IP{net.ParseIP("fe80::1")}, nil),
			wantIP:   "fe80::1",
			wantPort: 1883,
		},
		{
			name:    "no address",
			entry:   newEntry("Empty", "broker.local.", 1883, nil, nil, nil),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if broker != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", broker)
				}
				return
			}
			if broker == nil {
				t.Fatal("parseServiceEntry() returned nil, want broker")
			}
			if broker.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", broker.IP, tt.wantIP)
			}
			if broker.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", broker.Port, tt.wantPort)
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	entry := newEntry("Mosquitto", "nas.local.", 1883, []net.IP{net.ParseIP("192.168.1.10")}, nil,
		[]string{"version=2.0", "tls", "path=/mqtt=x"})

	broker := parseServiceEntry(entry)
	if broker == nil {
		t.Fatal("parseServiceEntry() returned nil")
	}

	tests := []struct {
		key  string
		want string
	}{
		{"version", "2.0"},
		{"tls", ""},
		{"path", "/mqtt=x"},
		{"missing", ""},
	}
	for _, tt := range tests {
		if got := broker.GetMetadata(tt.key); got != tt.want {
			t.Errorf("GetMetadata(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
	if broker.Instance != "Mosquitto" {
		t.Errorf("Instance = %v, want Mosquitto", broker.Instance)
	}
}

func TestNewScanner(t *testing.T) {
	s := NewScanner()
	if s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}

func TestDedupe(t *testing.T) {
	a := &Broker{IP: "10.0.0.1", Port: 1883, Instance: "first"}
	b := &Broker{IP: "10.0.0.1", Port: 1883, Instance: "second"}
	c := &Broker{IP: "10.0.0.2", Port: 1883}

	got := dedupe([]*Broker{a, b, c})
	if len(got) != 2 {
		t.Fatalf("dedupe() returned %d brokers, want 2", len(got))
	}
	if got[0].Instance != "first" {
		t.Errorf("dedupe() kept %q, want the first answer", got[0].Instance)
	}
}
