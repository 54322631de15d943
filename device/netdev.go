package device

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// NetdevInfo describes the uplink netdev backing an offload device.
type NetdevInfo struct {
	Name      string
	Index     int
	MAC       net.HardwareAddr
	MTU       int
	OperState string
}

// ProbeNetdev resolves a netdev by name via netlink. Bring-up uses it
// to confirm the uplink exists before touching the device and to feed
// the hardware address into the steering rules.
func ProbeNetdev(name string) (NetdevInfo, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return NetdevInfo{}, fmt.Errorf("lookup netdev %s: %w", name, err)
	}
	attrs := link.Attrs()
	return NetdevInfo{
		Name:      attrs.Name,
		Index:     attrs.Index,
		MAC:       attrs.HardwareAddr,
		MTU:       attrs.MTU,
		OperState: attrs.OperState.String(),
	}, nil
}
