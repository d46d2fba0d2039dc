// Package link talks to a peer board over two GPIO wires: a pulse on TX asks
// the peer to spawn a ball, and rising edges on RX do the same locally.
package link

import (
	"fmt"

	"pongos/hal"
	"pongos/kernel"
)

// PulseTicks is how long TX stays high. It must exceed the peer's sampling
// period or the pulse can fall between two samples.
const PulseTicks = 40

// Task samples RX each time its semaphore is signalled.
type Task struct {
	k    *kernel.Kernel
	tx   hal.GPIOPin
	rx   hal.GPIOPin
	led  hal.LED
	log  hal.Logger
	sema kernel.Semaphore

	onPeer func()
	edges  edgeDetector
}

// New configures the link pins. onPeer runs in thread context for every
// accepted rising edge.
func New(k *kernel.Kernel, l hal.Link, led hal.LED, log hal.Logger, onPeer func()) (*Task, error) {
	t := &Task{k: k, tx: l.TX(), rx: l.RX(), led: led, log: log, onPeer: onPeer}
	if err := t.tx.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	if err := t.rx.Configure(hal.GPIOModeInput, hal.GPIOPullNone); err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	if err := t.tx.Write(false); err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	k.InitSemaphore(&t.sema, 0)
	return t, nil
}

// Signal wakes the link thread. It is a periodic event callback.
func (t *Task) Signal() {
	t.k.Signal(&t.sema)
}

// Run is the link thread body.
func (t *Task) Run() {
	for {
		t.k.Wait(&t.sema)
		t.sample()
	}
}

func (t *Task) sample() {
	level, err := t.rx.Read()
	if err != nil {
		t.logf("link: rx: %v", err)
		return
	}
	if t.led != nil {
		if level {
			t.led.High()
		} else {
			t.led.Low()
		}
	}
	if t.edges.observe(level) {
		t.logf("link: peer spawn (edge %d)", t.edges.rises)
		if t.onPeer != nil {
			t.onPeer()
		}
	}
}

// Pulse drives TX high for PulseTicks. It sleeps the calling thread.
func (t *Task) Pulse() {
	t.drive(true)
	t.k.Sleep(PulseTicks)
	t.drive(false)
}

func (t *Task) drive(level bool) {
	if err := t.tx.Write(level); err != nil {
		t.logf("link: tx: %v", err)
	}
}

func (t *Task) logf(format string, args ...any) {
	if t.log != nil {
		t.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// Rises returns the number of rising edges seen on RX.
func (t *Task) Rises() uint32 { return t.edges.rises }

// edgeDetector counts rising edges. The first one is ignored: the line may
// settle high at power-up.
type edgeDetector struct {
	prev  bool
	rises uint32
}

func (e *edgeDetector) observe(level bool) (accept bool) {
	rising := level && !e.prev
	e.prev = level
	if !rising {
		return false
	}
	e.rises++
	return e.rises > 1
}
