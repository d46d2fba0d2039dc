package kernel

import (
	"errors"
	"testing"
	"time"
)

var errHalted = errors.New("fake port halted")

type fakeFrame struct {
	slot  int
	entry func()
}

// fakePort runs the scheduler synchronously: Switch only records the
// transfer, and the test plays the part of whichever thread is current.
type fakePort struct {
	mask    uint32
	pending bool
	tick    func()

	bringUps int
	started  *fakeFrame
	slice    time.Duration
	switches [][2]int
	halted   bool
}

func (p *fakePort) BringUp() { p.bringUps++ }

func (p *fakePort) NewFrame(slot int, entry func()) Frame {
	return &fakeFrame{slot: slot, entry: entry}
}

func (p *fakePort) Switch(from, to Frame) {
	if p.mask == 0 {
		panic("Switch with interrupts enabled")
	}
	p.switches = append(p.switches, [2]int{from.(*fakeFrame).slot, to.(*fakeFrame).slot})
}

func (p *fakePort) Start(first Frame, slice time.Duration, tick func()) error {
	p.started = first.(*fakeFrame)
	p.slice = slice
	p.tick = tick
	return nil
}

func (p *fakePort) DisableInterrupts() IRQState {
	s := p.mask
	p.mask++
	return IRQState(s)
}

func (p *fakePort) RestoreInterrupts(s IRQState) {
	p.mask = uint32(s)
	if p.mask == 0 && p.pending {
		p.deliver()
	}
}

func (p *fakePort) PendTick() {
	p.pending = true
	if p.mask == 0 {
		p.deliver()
	}
}

func (p *fakePort) deliver() {
	p.pending = false
	p.mask++
	p.tick()
	p.mask--
}

func (p *fakePort) WaitForInterrupt() {}

func (p *fakePort) Halt() {
	p.halted = true
	panic(errHalted)
}

// fire simulates one timer interrupt.
func (p *fakePort) fire() { p.PendTick() }

func (p *fakePort) fireN(n int) {
	for i := 0; i < n; i++ {
		p.fire()
	}
}

func nop() {}

func nops(n int) []func() {
	fns := make([]func(), n)
	for i := range fns {
		fns[i] = nop
	}
	return fns
}

// newLaunched returns a kernel with n no-op threads, launched on a fake port.
func newLaunched(t *testing.T, n int, periodic ...func(k *Kernel) error) (*Kernel, *fakePort) {
	t.Helper()

	p := &fakePort{}
	k := New(p, Config{Threads: n})
	if err := k.AddThreads(nops(n)...); err != nil {
		t.Fatalf("AddThreads() = %v, want nil", err)
	}
	for _, add := range periodic {
		if err := add(k); err != nil {
			t.Fatalf("AddPeriodicEventThread() = %v, want nil", err)
		}
	}
	if err := k.Launch(time.Millisecond); err != nil {
		t.Fatalf("Launch() = %v, want nil", err)
	}
	return k, p
}

func mustHalt(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != errHalted {
			t.Fatalf("recover() = %v, want %v", r, errHalted)
		}
	}()
	fn()
}
