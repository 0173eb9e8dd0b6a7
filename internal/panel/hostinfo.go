package panel

import (
	"net"
)

// HostInfo identifies the host in the state document.
type HostInfo struct {
	IP    string
	MAC   string
	Iface string
}

// LookupHost returns the first non-loopback IPv4 address and the hardware
// address of its interface. Missing values are left empty.
func LookupHost() HostInfo {
	ifaces, err := net.Interfaces()
	if err != nil {
		return HostInfo{}
	}
	return pickHost(ifaces, func(iface net.Interface) ([]net.Addr, error) {
		return iface.Addrs()
	})
}

func pickHost(ifaces []net.Interface, addrs func(net.Interface) ([]net.Addr, error)) HostInfo {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		list, err := addrs(iface)
		if err != nil {
			continue
		}
		for _, addr := range list {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return HostInfo{IP: ip4.String(), MAC: iface.HardwareAddr.String(), Iface: iface.Name}
			}
		}
	}
	return HostInfo{}
}
