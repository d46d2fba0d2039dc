package hal

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"pongos/kernel"
)

const quiesceTimeout = 100 * time.Millisecond

var (
	ErrCPUStarted = errors.New("cpu: already started")
	ErrCPUHalted  = errors.New("cpu: halted")
)

// CPUConfig tunes the emulated core.
type CPUConfig struct {
	// TickLimit stops the CPU after this many timer interrupts. Zero runs
	// until Stop.
	TickLimit uint64
}

// CPU is a kernel.Port that emulates a single core on goroutines.
//
// Every frame is a goroutine parked on its own resume channel and exactly one
// of them holds the baton at a time. The timer goroutine never runs kernel
// code: it latches a pending bit, and the frame holding the baton services it
// the next time its interrupt mask drops to zero. A frame that never calls
// into the kernel is therefore never preempted.
type CPU struct {
	cfg CPUConfig

	// Owned by the frame holding the baton (or the caller before Start).
	mask uint32
	tick func()

	pending atomic.Bool
	timerN  atomic.Uint64
	halted  atomic.Bool

	wake    chan struct{}
	restart chan struct{}
	stop    chan struct{}
	once    sync.Once

	// parked is closed once the baton holder has parked after a stop.
	parked     chan struct{}
	parkedOnce sync.Once
}

type cpuFrame struct {
	slot    int
	entry   func()
	resume  chan struct{}
	mask    uint32
	started bool
}

// NewCPU returns an idle CPU. Pass it to kernel.New, then Launch.
func NewCPU(cfg CPUConfig) *CPU {
	return &CPU{
		cfg:     cfg,
		wake:    make(chan struct{}, 1),
		restart: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		parked:  make(chan struct{}),
	}
}

func (c *CPU) BringUp() {
	c.mask = 0
	c.pending.Store(false)
}

func (c *CPU) NewFrame(slot int, entry func()) kernel.Frame {
	return &cpuFrame{slot: slot, entry: entry, resume: make(chan struct{}, 1)}
}

// Start runs first on a fresh goroutine and blocks until the CPU stops.
// It returns ErrCPUHalted if the kernel halted the core.
func (c *CPU) Start(first kernel.Frame, slice time.Duration, tick func()) error {
	if c.tick != nil {
		return ErrCPUStarted
	}
	c.tick = tick

	go c.timer(slice)
	c.run(first.(*cpuFrame))

	<-c.stop
	// Let the running frame reach a kernel entry so callers can inspect
	// state it owns. A frame spinning outside the kernel is not waited for.
	select {
	case <-c.parked:
	case <-time.After(quiesceTimeout):
	}
	if c.halted.Load() {
		return ErrCPUHalted
	}
	return nil
}

// Switch hands the baton from the calling frame to to and parks the caller.
func (c *CPU) Switch(from, to kernel.Frame) {
	f := from.(*cpuFrame)
	f.mask = c.mask
	c.run(to.(*cpuFrame))

	select {
	case <-f.resume:
	case <-c.stop:
		if len(f.resume) > 0 {
			c.park()
		}
		select {}
	}
	c.mask = f.mask
}

func (c *CPU) run(f *cpuFrame) {
	if f.started {
		f.resume <- struct{}{}
		return
	}
	f.started = true
	go func() {
		c.mask = 0
		c.poll()
		f.entry()
	}()
}

func (c *CPU) DisableInterrupts() kernel.IRQState {
	s := c.mask
	c.mask++
	return kernel.IRQState(s)
}

func (c *CPU) RestoreInterrupts(s kernel.IRQState) {
	c.mask = uint32(s)
	if c.mask == 0 {
		c.poll()
	}
}

// PendTick requests an immediate scheduler entry and restarts the slice.
func (c *CPU) PendTick() {
	c.pending.Store(true)
	select {
	case c.restart <- struct{}{}:
	default:
	}
	if c.mask == 0 {
		c.poll()
	}
}

func (c *CPU) WaitForInterrupt() {
	select {
	case <-c.wake:
	case <-c.stop:
	}
	c.poll()
}

// Halt stops the CPU for good. The calling frame never resumes.
func (c *CPU) Halt() {
	c.halted.Store(true)
	c.Stop()
	c.park()
}

// Stop ends Start. Frames park at their next kernel entry.
func (c *CPU) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// TimerTicks returns the number of timer interrupts raised so far.
func (c *CPU) TimerTicks() uint64 { return c.timerN.Load() }

// poll services pending ticks. Called only with the mask at zero.
func (c *CPU) poll() {
	for {
		select {
		case <-c.stop:
			c.park()
		default:
		}
		if c.tick == nil || !c.pending.CompareAndSwap(true, false) {
			return
		}
		c.mask++
		c.tick()
		c.mask--
	}
}

// park retires the baton holder for good.
func (c *CPU) park() {
	c.parkedOnce.Do(func() { close(c.parked) })
	select {}
}

func (c *CPU) timer(slice time.Duration) {
	t := time.NewTicker(slice)
	defer t.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-c.restart:
			t.Reset(slice)
		case <-t.C:
			n := c.timerN.Add(1)
			c.pending.Store(true)
			select {
			case c.wake <- struct{}{}:
			default:
			}
			if c.cfg.TickLimit > 0 && n >= c.cfg.TickLimit {
				c.Stop()
				return
			}
		}
	}
}
