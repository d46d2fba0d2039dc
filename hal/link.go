package hal

import (
	"fmt"
	"strings"
	"time"
)

// LinkMode selects what the link pins are wired to on the host.
type LinkMode string

const (
	LinkIdle     LinkMode = "idle"     // no peer; RX stays low
	LinkLoopback LinkMode = "loopback" // TX wired back to RX
	LinkSim      LinkMode = "sim"      // a simulated peer pulses RX
)

// Simulated peer timing.
const (
	SimPeerPeriod = 3 * time.Second
	SimPeerPulse  = 100 * time.Millisecond
)

// ParseLinkMode accepts idle, loopback or sim. The empty string is idle.
func ParseLinkMode(s string) (LinkMode, error) {
	switch m := LinkMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return LinkIdle, nil
	case LinkIdle, LinkLoopback, LinkSim:
		return m, nil
	default:
		return "", fmt.Errorf("link: unknown mode %q", s)
	}
}

// Options configures a HAL instance.
type Options struct {
	Link      LinkMode
	TickLimit uint64
}

func newVirtualLink(mode LinkMode) (Link, error) {
	switch mode {
	case LinkIdle, "":
		return pinLink{
			tx: newVirtualPin("TX", GPIOCapOutput),
			rx: newVirtualPin("RX", GPIOCapInput|GPIOCapPullDown),
		}, nil
	case LinkLoopback:
		tx, rx := newLoopbackPins("TX", "RX")
		return pinLink{tx: tx, rx: rx}, nil
	case LinkSim:
		return pinLink{
			tx: newVirtualPin("TX", GPIOCapOutput),
			rx: newPeerPin("RX", SimPeerPeriod, SimPeerPulse, nil),
		}, nil
	default:
		return nil, fmt.Errorf("link: unknown mode %q", mode)
	}
}
