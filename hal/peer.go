package hal

import (
	"fmt"
	"sync"
	"time"
)

// peerPin is an RX line driven by a simulated peer that presses its button
// every period. The line is low at start and high for the last pulse of each
// period.
type peerPin struct {
	mu         sync.Mutex
	name       string
	configured bool

	t0     time.Time
	now    func() time.Time
	period time.Duration
	pulse  time.Duration
}

func newPeerPin(name string, period, pulse time.Duration, now func() time.Time) *peerPin {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = SimPeerPeriod
	}
	pulse = min(max(pulse, 0), period)
	return &peerPin{name: name, t0: now(), now: now, period: period, pulse: pulse}
}

func (p *peerPin) Name() string   { return p.name }
func (p *peerPin) Caps() GPIOCaps { return GPIOCapInput }

func (p *peerPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if mode != GPIOModeInput || pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: only floating input supported", p.name)
	}
	p.configured = true
	return nil
}

func (p *peerPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	phase := p.now().Sub(p.t0) % p.period
	return phase >= p.period-p.pulse, nil
}

func (p *peerPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// Presses returns how many pulses the peer has started so far.
func (p *peerPin) Presses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int((p.now().Sub(p.t0) + p.pulse) / p.period)
}
