package link

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pongos/hal"
	"pongos/kernel"
)

func TestEdgeDetectorSkipsFirstRise(t *testing.T) {
	var e edgeDetector
	levels := []bool{false, true, true, false, true, false, false, true, true}
	var accepted []int
	for i, l := range levels {
		if e.observe(l) {
			accepted = append(accepted, i)
		}
	}

	if e.rises != 3 {
		t.Fatalf("rises = %d, want 3", e.rises)
	}
	if len(accepted) != 2 || accepted[0] != 4 || accepted[1] != 7 {
		t.Fatalf("accepted at %v, want [4 7]", accepted)
	}
}

func TestEdgeDetectorHighAtStart(t *testing.T) {
	var e edgeDetector
	if e.observe(true) {
		t.Fatal("first high accepted")
	}
	if e.observe(true) {
		t.Fatal("held level accepted")
	}
	e.observe(false)
	if !e.observe(true) {
		t.Fatal("second rise not accepted")
	}
}

func TestLoopbackPulseReachesPeer(t *testing.T) {
	h, err := hal.New(hal.Options{Link: hal.LinkLoopback})
	if err != nil {
		t.Fatalf("hal.New: %v", err)
	}
	cpu := h.Port()
	k := kernel.New(cpu, kernel.Config{Threads: 3, PeriodicSlots: 1})

	peer := make(chan struct{}, 8)
	lt, err := New(k, h.Link(), nil, nil, func() { peer <- struct{}{} })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pulser := func() {
		for {
			lt.Pulse()
			k.Sleep(PulseTicks)
		}
	}
	if err := k.AddThreads(lt.Run, pulser, k.Idle); err != nil {
		t.Fatalf("AddThreads() = %v, want nil", err)
	}
	if err := k.AddPeriodicEventThread(lt.Signal, 5); err != nil {
		t.Fatalf("AddPeriodicEventThread() = %v, want nil", err)
	}

	done := make(chan error, 1)
	go func() { done <- k.Launch(time.Millisecond) }()

	select {
	case <-peer:
	case <-time.After(5 * time.Second):
		cpu.Stop()
		t.Fatal("no peer spawn after pulses on a loopback link")
	}
	cpu.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Launch() = %v, want nil", err)
	}
}

var errStuck = errors.New("stuck pin")

type stuckPin struct{}

func (stuckPin) Name() string                               { return "TX" }
func (stuckPin) Caps() hal.GPIOCaps                         { return hal.GPIOCapOutput }
func (stuckPin) Configure(hal.GPIOMode, hal.GPIOPull) error { return nil }
func (stuckPin) Read() (bool, error)                        { return false, errStuck }
func (stuckPin) Write(bool) error                           { return errStuck }

type stuckLink struct{}

func (stuckLink) TX() hal.GPIOPin { return stuckPin{} }
func (stuckLink) RX() hal.GPIOPin { return stuckPin{} }

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestNewReportsTXError(t *testing.T) {
	if _, err := New(nil, stuckLink{}, nil, nil, nil); !errors.Is(err, errStuck) {
		t.Fatalf("New() error = %v, want %v", err, errStuck)
	}
}

func TestPinErrorsAreLogged(t *testing.T) {
	log := &lineLog{}
	lt := &Task{tx: stuckPin{}, rx: stuckPin{}, log: log}

	lt.drive(true)
	lt.sample()

	if len(log.lines) != 2 {
		t.Fatalf("log = %q, want two lines", log.lines)
	}
	if !strings.HasPrefix(log.lines[0], "link: tx: ") || !strings.HasPrefix(log.lines[1], "link: rx: ") {
		t.Fatalf("log = %q, want tx then rx errors", log.lines)
	}
}
