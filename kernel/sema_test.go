package kernel

import (
	"reflect"
	"testing"
)

func blockedSlots(k *Kernel) []int {
	var out []int
	for _, th := range k.Stats().Threads {
		if th.Blocked {
			out = append(out, th.Slot)
		}
	}
	return out
}

func TestWaitWithCountDoesNotBlock(t *testing.T) {
	k, p := newLaunched(t, 2)

	var sem Semaphore
	k.InitSemaphore(&sem, 2)
	k.Wait(&sem)
	k.Wait(&sem)

	if got := sem.Value(); got != 0 {
		t.Fatalf("Value() = %d, want 0", got)
	}
	if got := k.Current(); got != 0 {
		t.Fatalf("Current() = %d, want 0", got)
	}
	if len(p.switches) != 0 {
		t.Fatalf("switches = %v, want none", p.switches)
	}
}

func TestWaitBlocksUntilPeriodicSignal(t *testing.T) {
	var sem Semaphore
	k, p := newLaunched(t, 3, func(k *Kernel) error {
		return k.AddPeriodicEventThread(func() { k.Signal(&sem) }, 3)
	})
	k.InitSemaphore(&sem, 0)

	k.Wait(&sem) // tick 1
	if got := sem.Value(); got != -1 {
		t.Fatalf("Value() after Wait = %d, want -1", got)
	}
	if got := blockedSlots(k); len(got) != 1 || got[0] != 0 {
		t.Fatalf("blocked = %v, want [0]", got)
	}
	if got := k.Current(); got != 1 {
		t.Fatalf("Current() = %d, want 1", got)
	}

	p.fire() // tick 2
	if got := k.Current(); got != 2 {
		t.Fatalf("tick 2: Current() = %d, want 2", got)
	}

	p.fire() // tick 3: Signal fires before selection
	if got := sem.Value(); got != 0 {
		t.Fatalf("Value() after Signal = %d, want 0", got)
	}
	if got := blockedSlots(k); len(got) != 0 {
		t.Fatalf("blocked = %v, want none", got)
	}
	if got := k.Current(); got != 0 {
		t.Fatalf("tick 3: Current() = %d, want 0", got)
	}
}

func TestSignalWakesOneInListOrder(t *testing.T) {
	k, _ := newLaunched(t, NumThreads)

	var sem Semaphore
	k.InitSemaphore(&sem, 0)

	// Slot 2 blocks first, then slot 0.
	k.Yield()
	k.Yield()
	k.Wait(&sem)
	for k.Current() != 0 {
		k.Yield()
	}
	k.Wait(&sem)

	if got := blockedSlots(k); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("blocked = %v, want [0 2]", got)
	}
	if got := sem.Value(); got != -2 {
		t.Fatalf("Value() = %d, want -2", got)
	}

	k.Signal(&sem)
	if got := blockedSlots(k); len(got) != 1 || got[0] != 2 {
		t.Fatalf("after Signal: blocked = %v, want [2]", got)
	}

	k.Signal(&sem)
	if got := blockedSlots(k); len(got) != 0 {
		t.Fatalf("after second Signal: blocked = %v, want none", got)
	}
	if got := sem.Value(); got != 0 {
		t.Fatalf("Value() = %d, want 0", got)
	}
}

func TestSignalIgnoresOtherSemaphores(t *testing.T) {
	k, _ := newLaunched(t, 3)

	var a, b Semaphore
	k.InitSemaphore(&a, 0)
	k.InitSemaphore(&b, 0)

	k.Wait(&a)
	k.Signal(&b)

	if got := blockedSlots(k); len(got) != 1 || got[0] != 0 {
		t.Fatalf("blocked = %v, want [0]", got)
	}
	if got := b.Value(); got != 1 {
		t.Fatalf("b.Value() = %d, want 1", got)
	}
}

func TestSemaphoreCountInvariant(t *testing.T) {
	k, _ := newLaunched(t, NumThreads)

	var sem Semaphore
	const initial = 1
	k.InitSemaphore(&sem, initial)

	ops := "WWWWSSWSWWSSSSWS"
	waits, signals := 0, 0
	for i, op := range ops {
		switch op {
		case 'W':
			k.Wait(&sem)
			waits++
		case 'S':
			k.Signal(&sem)
			signals++
		}

		want := int32(initial + signals - waits)
		if got := sem.Value(); got != want {
			t.Fatalf("op %d: Value() = %d, want %d", i, got, want)
		}
		blocked := len(blockedSlots(k))
		wantBlocked := 0
		if want < 0 {
			wantBlocked = int(-want)
		}
		if blocked != wantBlocked {
			t.Fatalf("op %d: %d threads blocked, want %d", i, blocked, wantBlocked)
		}
	}
}

func TestSemaphoreIsNoCopy(t *testing.T) {
	f, ok := reflect.TypeOf(Semaphore{}).FieldByName("noCopy")
	if !ok {
		t.Fatal("Semaphore has no noCopy field")
	}
	if _, ok := reflect.PointerTo(f.Type).MethodByName("Lock"); !ok {
		t.Fatal("noCopy has no Lock method; copylocks cannot see it")
	}
}
