package kernel

import (
	"errors"
	"time"
)

const (
	// NumThreads is the thread pool size of the reference configuration.
	NumThreads = 6
	// NumPeriodic is the number of periodic event slots of the reference configuration.
	NumPeriodic = 2
	// FifoSize is the capacity of the reference bounded queue.
	FifoSize = 10
)

var (
	ErrThreadCount      = errors.New("kernel: wrong number of threads")
	ErrNilThread        = errors.New("kernel: nil thread entry")
	ErrThreadsAdded     = errors.New("kernel: threads already added")
	ErrNoThreads        = errors.New("kernel: no threads added")
	ErrLaunched         = errors.New("kernel: already launched")
	ErrBadSlice         = errors.New("kernel: time slice must be positive")
	ErrPeriodicFull     = errors.New("kernel: no free periodic slot")
	ErrBadPeriod        = errors.New("kernel: period must be at least one tick")
	ErrNoEligibleThread = errors.New("kernel: no eligible thread")
	ErrThreadReturned   = errors.New("kernel: thread entry returned")
)

// Config sizes the fixed tables. Zero fields take the reference values.
type Config struct {
	Threads       int
	PeriodicSlots int
}

// tcb is a thread control block.
type tcb struct {
	frame   Frame
	next    int
	blocked *Semaphore
	sleep   uint32

	dispatches uint64
}

func (t *tcb) eligible() bool {
	return t.blocked == nil && t.sleep == 0
}

// Kernel owns every piece of shared scheduler state: the thread pool, the
// periodic table and the current-thread index.
//
// All multi-step mutations run with the port's interrupts disabled.
type Kernel struct {
	port Port

	threads []tcb
	added   bool
	run     int

	periodic  []periodicEntry
	nperiodic int

	launched bool
	ticks    uint64
	switches uint64
	yields   uint64

	panicState
}

// New allocates the kernel tables and initializes them.
func New(port Port, cfg Config) *Kernel {
	if cfg.Threads <= 0 {
		cfg.Threads = NumThreads
	}
	if cfg.PeriodicSlots <= 0 {
		cfg.PeriodicSlots = NumPeriodic
	}
	k := &Kernel{
		port:     port,
		threads:  make([]tcb, cfg.Threads),
		periodic: make([]periodicEntry, cfg.PeriodicSlots),
	}
	k.Init()
	return k
}

// Init brings up the board and clears the pool and the periodic table.
// No thread is linked or runnable afterwards.
func (k *Kernel) Init() {
	k.port.BringUp()

	for i := range k.threads {
		k.threads[i] = tcb{next: -1}
	}
	for i := range k.periodic {
		k.periodic[i] = periodicEntry{}
	}
	k.added = false
	k.nperiodic = 0
	k.run = 0
	k.launched = false
	k.ticks = 0
	k.switches = 0
	k.yields = 0
}

// AddThreads registers the main threads, one per pool slot, in list order.
// It must be called exactly once, before Launch.
func (k *Kernel) AddThreads(entries ...func()) error {
	if k.launched {
		return ErrLaunched
	}
	if k.added {
		return ErrThreadsAdded
	}
	if len(entries) != len(k.threads) {
		return ErrThreadCount
	}
	for _, fn := range entries {
		if fn == nil {
			return ErrNilThread
		}
	}

	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)

	for i, fn := range entries {
		k.threads[i] = tcb{
			frame: k.port.NewFrame(i, k.threadMain(i, fn)),
			next:  (i + 1) % len(k.threads),
		}
	}
	k.run = 0
	k.added = true
	return nil
}

// Launch arms the tick at the given slice and transfers into the first
// registered thread. It only returns if the port stops.
func (k *Kernel) Launch(slice time.Duration) error {
	if slice <= 0 {
		return ErrBadSlice
	}
	if !k.added {
		return ErrNoThreads
	}
	if k.launched {
		return ErrLaunched
	}

	s := k.port.DisableInterrupts()
	k.launched = true
	k.run = 0
	k.threads[0].dispatches++
	first := k.threads[0].frame
	k.port.RestoreInterrupts(s)

	return k.port.Start(first, slice, k.tick)
}

// Current returns the slot of the running thread.
func (k *Kernel) Current() int {
	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)
	return k.run
}

// Ticks returns the number of scheduler entries since Launch.
func (k *Kernel) Ticks() uint64 {
	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)
	return k.ticks
}

// threadMain wraps a thread entry. Threads are expected to run forever;
// returning or panicking is fatal.
func (k *Kernel) threadMain(slot int, entry func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				k.fatal(slot, r)
			}
		}()
		entry()
		k.fatal(slot, ErrThreadReturned)
	}
}
