package kernel

// ThreadStats is a snapshot of one thread control block.
type ThreadStats struct {
	Slot       int
	Blocked    bool
	Sleep      uint32
	Dispatches uint64
}

// Eligible reports whether the thread could be dispatched.
func (t ThreadStats) Eligible() bool { return !t.Blocked && t.Sleep == 0 }

// Stats is a consistent snapshot of scheduler counters.
type Stats struct {
	Ticks    uint64
	Switches uint64
	Yields   uint64 // Yield and Sleep(0) calls
	Current  int
	Threads  []ThreadStats
	// PeriodicRuns counts callback invocations per registered periodic slot.
	PeriodicRuns []uint64
}

// Stats returns a snapshot taken with interrupts disabled.
func (k *Kernel) Stats() Stats {
	st := Stats{
		Threads:      make([]ThreadStats, len(k.threads)),
		PeriodicRuns: make([]uint64, 0, len(k.periodic)),
	}

	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)

	st.Ticks = k.ticks
	st.Switches = k.switches
	st.Yields = k.yields
	st.Current = k.run
	for i := range k.threads {
		t := &k.threads[i]
		st.Threads[i] = ThreadStats{
			Slot:       i,
			Blocked:    t.blocked != nil,
			Sleep:      t.sleep,
			Dispatches: t.dispatches,
		}
	}
	for i := 0; i < k.nperiodic; i++ {
		st.PeriodicRuns = append(st.PeriodicRuns, k.periodic[i].runs)
	}
	return st
}
