// Package node parses remote daemon descriptors of the form
// host[:port][/network[/name]] and carries the built-in node list.
package node

import (
	"net"
	"strconv"
	"strings"

	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Default daemon RPC ports per network.
const (
	MainnetPort  = 18081
	StagenetPort = 38081
	TestnetPort  = 28081
)

// Descriptor identifies a remote daemon.
type Descriptor struct {
	Host    string         `json:"host"`
	Port    int            `json:"port"`
	Network wallet.Network `json:"network"`
	Name    string         `json:"name"`
}

// DefaultPort returns the daemon RPC port for network.
func DefaultPort(network wallet.Network) int {
	switch network {
	case wallet.Stagenet:
		return StagenetPort
	case wallet.Testnet:
		return TestnetPort
	default:
		return MainnetPort
	}
}

// Parse reads a descriptor such as "xmr-de.boldsuck.org:18081/mainnet/boldsuck.org".
// The port defaults to the network's RPC port, the network to mainnet and the
// name to the host. IPv6 hosts must be bracketed.
func Parse(s string) (Descriptor, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Descriptor{}, invalid(s, "empty node")
	}

	parts := strings.SplitN(raw, "/", 3)
	hostPort := parts[0]

	network := wallet.Mainnet
	if len(parts) > 1 && parts[1] != "" {
		n, err := wallet.ParseNetwork(parts[1])
		if err != nil {
			return Descriptor{}, invalid(s, "unknown network "+parts[1])
		}
		network = n
	}

	host, port, err := splitHostPort(hostPort, DefaultPort(network))
	if err != nil {
		return Descriptor{}, invalid(s, err.Error())
	}

	name := host
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		name = strings.TrimSpace(parts[2])
	}

	return Descriptor{Host: host, Port: port, Network: network, Name: name}, nil
}

// MustParse is Parse for compile-time constants. It panics on error.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func splitHostPort(hostPort string, defaultPort int) (string, int, error) {
	host, portStr := hostPort, ""
	if strings.HasPrefix(hostPort, "[") || strings.Count(hostPort, ":") == 1 {
		h, p, err := net.SplitHostPort(hostPort)
		if err != nil {
			if !strings.HasSuffix(hostPort, "]") {
				return "", 0, err
			}
			h = strings.Trim(hostPort, "[]")
		}
		host, portStr = h, p
	} else if strings.Contains(hostPort, ":") {
		return "", 0, errBracket
	}

	if host == "" || strings.ContainsAny(host, " \t") {
		return "", 0, errHost
	}

	if portStr == "" {
		return host, defaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, errPort
	}
	return host, port, nil
}

// Address returns host:port suitable for dialing.
func (d Descriptor) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// String returns the canonical descriptor text, which Parse accepts.
func (d Descriptor) String() string {
	return d.Address() + "/" + string(d.Network) + "/" + d.Name
}

// IsOnion reports whether the daemon is a Tor hidden service.
func (d Descriptor) IsOnion() bool {
	return strings.HasSuffix(strings.ToLower(d.Host), ".onion")
}

// Label returns the display name annotated with the trust flag, for example
// "boldsuck.org (trusted)".
func (d Descriptor) Label(trusted bool) string {
	if trusted {
		return d.Name + " (trusted)"
	}
	return d.Name + " (untrusted)"
}

func invalid(input, reason string) error {
	return kiterr.WithDetails(kiterr.InvalidNode("Invalid node"), map[string]string{
		"node":   input,
		"reason": reason,
	})
}
