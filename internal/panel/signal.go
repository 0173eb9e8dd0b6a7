package panel

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// wirelessPath lists link quality per wireless interface on Linux.
const wirelessPath = "/proc/net/wireless"

// WirelessSignal returns a signal source for iface. It reports the level in
// dBm read from /proc/net/wireless, or "" when iface has no radio.
func WirelessSignal(iface string) func() string {
	return func() string {
		if iface == "" {
			return ""
		}
		f, err := os.Open(wirelessPath)
		if err != nil {
			return ""
		}
		defer f.Close()

		level, _ := parseWireless(f, iface)
		return level
	}
}

// parseWireless finds the signal level column for iface.
//
//	Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
//	 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
//	 wlan0: 0000   54.  -56.  -256        0      0      0      0      0        0
func parseWireless(r io.Reader, iface string) (string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != iface+":" {
			continue
		}
		level, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
		if err != nil {
			return "", false
		}
		return strconv.Itoa(int(level)), true
	}
	return "", false
}
