// Package discovery finds MQTT brokers on the local network using mDNS/DNS-SD.
//
// Brokers such as Mosquitto (with avahi) or Home Assistant advertise the
// "_mqtt._tcp" service. When no broker address is configured, the keypad
// browses for that service and uses the first broker that answers.
//
// # Usage Example
//
//	brokers, err := discovery.ScanForBrokers(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range brokers {
//	    fmt.Println(b.URL())
//	}
//
// Only the first IPv4 address of an entry is used; IPv6 is a fallback.
package discovery
