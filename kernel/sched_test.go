package kernel

import (
	"errors"
	"testing"
)

func TestTickRoundRobin(t *testing.T) {
	k, p := newLaunched(t, 4)

	want := []int{1, 2, 3, 0, 1, 2}
	for i, w := range want {
		p.fire()
		if got := k.Current(); got != w {
			t.Fatalf("tick %d: Current() = %d, want %d", i+1, got, w)
		}
	}
	if got := k.Ticks(); got != uint64(len(want)) {
		t.Fatalf("Ticks() = %d, want %d", got, len(want))
	}
	if got := len(p.switches); got != len(want) {
		t.Fatalf("switches = %d, want %d", got, len(want))
	}
	if p.switches[0] != [2]int{0, 1} {
		t.Fatalf("first switch = %v, want [0 1]", p.switches[0])
	}
}

func TestRoundRobinFairness(t *testing.T) {
	k, p := newLaunched(t, NumThreads)

	before := k.Stats()
	const laps = 25
	p.fireN(laps * NumThreads)
	after := k.Stats()

	for i := range after.Threads {
		got := after.Threads[i].Dispatches - before.Threads[i].Dispatches
		if got != laps {
			t.Fatalf("thread %d dispatched %d times, want %d", i, got, laps)
		}
	}
}

func TestSingleEligibleThreadKeepsRunning(t *testing.T) {
	k, p := newLaunched(t, 1)

	p.fireN(5)

	if got := k.Current(); got != 0 {
		t.Fatalf("Current() = %d, want 0", got)
	}
	if len(p.switches) != 0 {
		t.Fatalf("switches = %v, want none", p.switches)
	}
	if got := k.Stats().Threads[0].Dispatches; got != 6 {
		t.Fatalf("Dispatches = %d, want 6", got)
	}
}

func TestSleepSkipsThread(t *testing.T) {
	k, p := newLaunched(t, 3)

	// Thread 0 sleeps for two scheduler entries; its own suspend is the first.
	k.Sleep(2)
	if got := k.Current(); got != 1 {
		t.Fatalf("after Sleep: Current() = %d, want 1", got)
	}
	if got := k.Stats().Threads[0].Sleep; got != 1 {
		t.Fatalf("after tick 1: Sleep = %d, want 1", got)
	}

	p.fire()
	if got := k.Current(); got != 2 {
		t.Fatalf("tick 2: Current() = %d, want 2", got)
	}
	if got := k.Stats().Threads[0].Sleep; got != 0 {
		t.Fatalf("after tick 2: Sleep = %d, want 0", got)
	}

	p.fire()
	if got := k.Current(); got != 0 {
		t.Fatalf("tick 3: Current() = %d, want 0", got)
	}
}

func TestSleepIneligibleForExactTicks(t *testing.T) {
	const n = 5
	k, p := newLaunched(t, 2)

	k.Sleep(n)
	ticks := 1
	for k.Stats().Threads[0].Sleep != 0 {
		if k.Current() == 0 {
			t.Fatalf("sleeping thread dispatched at tick %d", ticks)
		}
		p.fire()
		ticks++
	}
	if ticks != n {
		t.Fatalf("thread eligible after %d ticks, want %d", ticks, n)
	}
}

func TestSleepZeroIsYield(t *testing.T) {
	k, _ := newLaunched(t, 3)

	k.Sleep(0)
	if got := k.Current(); got != 1 {
		t.Fatalf("after Sleep(0): Current() = %d, want 1", got)
	}
	if !k.Stats().Threads[0].Eligible() {
		t.Fatal("thread 0 not eligible after Sleep(0)")
	}

	k.Yield()
	st := k.Stats()
	if st.Current != 2 {
		t.Fatalf("after Yield: Current() = %d, want 2", st.Current)
	}
	if st.Yields != 2 {
		t.Fatalf("Yields = %d, want 2", st.Yields)
	}
	if !st.Threads[1].Eligible() {
		t.Fatal("thread 1 not eligible after Yield")
	}
}

func TestSuspendRunsFullTick(t *testing.T) {
	runs := 0
	k, _ := newLaunched(t, 2, func(k *Kernel) error {
		return k.AddPeriodicEventThread(func() { runs++ }, 1)
	})

	k.Suspend()
	k.Suspend()

	if runs != 2 {
		t.Fatalf("periodic runs = %d, want 2", runs)
	}
	if got := k.Ticks(); got != 2 {
		t.Fatalf("Ticks() = %d, want 2", got)
	}
}

func TestSuspendDeferredWhileMasked(t *testing.T) {
	k, p := newLaunched(t, 2)

	s := p.DisableInterrupts()
	k.Suspend()
	if got := k.Ticks(); got != 0 {
		t.Fatalf("Ticks() inside critical section = %d, want 0", got)
	}
	p.RestoreInterrupts(s)

	if got := k.Ticks(); got != 1 {
		t.Fatalf("Ticks() after restore = %d, want 1", got)
	}
	if got := k.Current(); got != 1 {
		t.Fatalf("Current() = %d, want 1", got)
	}
}

func TestNoEligibleThreadIsFatal(t *testing.T) {
	k, p := newLaunched(t, 2)

	var got PanicInfo
	k.SetPanicHandler(func(info PanicInfo) { got = info })

	k.Sleep(10) // thread 0 out, thread 1 runs
	mustHalt(t, func() { k.Sleep(10) })

	if !p.halted {
		t.Fatal("port not halted")
	}
	if err, _ := got.Value.(error); !errors.Is(err, ErrNoEligibleThread) {
		t.Fatalf("PanicInfo.Value = %v, want %v", got.Value, ErrNoEligibleThread)
	}
	if got.Slot != 1 {
		t.Fatalf("PanicInfo.Slot = %d, want 1", got.Slot)
	}
}
