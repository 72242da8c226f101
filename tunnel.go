package piafwd

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/c-robinson/iplib"
	"github.com/pion/stun"
	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netlink/nl"
	"golang.zx2c4.com/wireguard/wgctrl"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// TunnelStatus describes the vpn tunnel interface at a point in time.
type TunnelStatus struct {
	Name      string
	Exists    bool
	Connected bool
	Addresses []netlink.Addr
}

// Connected reports whether the vpn is up: the tunnel interface exists
// and holds at least one IPv4 address. Link flags are not consulted;
// address presence is the working definition of connected.
func Connected(name string) bool {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return false
	}
	addrs, err := netlink.AddrList(link, nl.FAMILY_V4)
	if err != nil {
		return false
	}
	return len(addrs) > 0
}

// LocalAddress returns the IPv4 address assigned to the tunnel
// interface. The tunnel carries exactly one address when the vpn is
// connected; any other count is reported rather than guessed at.
func LocalAddress(name string) (string, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return "", Fail(InterfaceNotConnected, err, "interface %s does not exist", name)
	}
	addrs, err := netlink.AddrList(link, nl.FAMILY_V4)
	if err != nil {
		return "", Fail(InterfaceNotConnected, err, "unable to list addresses on %s", name)
	}
	return pickAddress(name, addrs)
}

// pickAddress enforces the one address expectation.
func pickAddress(name string, addrs []netlink.Addr) (string, error) {
	switch {
	case len(addrs) == 0:
		// callers check Connected first, so an empty list means the
		// tunnel went down between the check and the read
		return "", fmt.Errorf("no IPv4 address on interface %s", name)
	case len(addrs) > 1:
		return "", Fail(TooManyAddresses, nil,
			"received %d IPv4 addresses for interface %s, expected 1\naddresses:\n%s",
			len(addrs), name, strings.Join(addressStrings(addrs), "\n"))
	}
	return addrs[0].IP.String(), nil
}

// Status gathers the current state of the tunnel interface for display.
func Status(name string) TunnelStatus {
	status := TunnelStatus{Name: name}
	link, err := netlink.LinkByName(name)
	if err != nil {
		return status
	}
	status.Exists = true
	addrs, err := netlink.AddrList(link, nl.FAMILY_V4)
	if err != nil {
		return status
	}
	sortAddresses(addrs)
	status.Addresses = addrs
	status.Connected = len(addrs) > 0
	return status
}

// GetDevice returns the tunnel as a wgtypes.Device when the tunnel is a
// wireguard interface.
func GetDevice(name string) (*wgtypes.Device, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.Device(name)
}

// PublicAddress discovers the address the internet sees for this host
// using stun. Run while the vpn is connected, it is the address a
// forwarded port is reachable on.
func PublicAddress() (*stun.XORMappedAddress, error) {
	address := &stun.XORMappedAddress{}
	stunServer, err := net.ResolveUDPAddr("udp4", "stun1.l.google.com:19302")
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp4", nil, stunServer)
	if err != nil {
		return nil, err
	}
	conn, err := stun.NewClient(c)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	msg := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	var getErr error
	if err := conn.Do(msg, func(res stun.Event) {
		getErr = address.GetFrom(res.Message)
	}); err != nil {
		return nil, err
	}
	if getErr != nil {
		return nil, getErr
	}
	return address, nil
}

// sortAddresses orders addresses so diagnostics are stable.
func sortAddresses(addrs []netlink.Addr) {
	sort.Slice(addrs, func(i, j int) bool {
		return iplib.CompareIPs(addrs[i].IP, addrs[j].IP) < 0
	})
}

func addressStrings(addrs []netlink.Addr) []string {
	sortAddresses(addrs)
	out := []string{}
	for _, addr := range addrs {
		out = append(out, addr.IP.String())
	}
	return out
}
