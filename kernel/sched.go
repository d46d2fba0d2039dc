package kernel

// tick is the scheduler entry. The port calls it once per time slice and
// whenever a thread suspends, always in interrupt context.
func (k *Kernel) tick() {
	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)

	k.ticks++
	k.runPeriodic()

	for i := range k.threads {
		if k.threads[i].sleep > 0 {
			k.threads[i].sleep--
		}
	}

	next, ok := k.nextEligible()
	if !ok {
		k.fatal(k.run, ErrNoEligibleThread)
		return
	}
	k.dispatch(next)
}

// nextEligible walks the circular list starting after the current thread.
// The current thread itself is the last candidate of the lap.
func (k *Kernel) nextEligible() (int, bool) {
	i := k.run
	for range k.threads {
		i = k.threads[i].next
		if k.threads[i].eligible() {
			return i, true
		}
	}
	return 0, false
}

func (k *Kernel) dispatch(next int) {
	prev := k.run
	k.run = next
	k.threads[next].dispatches++
	if prev == next {
		return
	}
	k.switches++
	k.port.Switch(k.threads[prev].frame, k.threads[next].frame)
}

// Suspend gives up the rest of the current slice. The scheduler runs as soon
// as interrupts are enabled; the caller resumes when it is next dispatched.
func (k *Kernel) Suspend() {
	k.port.PendTick()
}

// Yield gives up the rest of the slice while staying eligible.
func (k *Kernel) Yield() {
	s := k.port.DisableInterrupts()
	k.yields++
	k.port.RestoreInterrupts(s)
	k.Suspend()
}

// Sleep makes the calling thread ineligible for ticks scheduler entries and
// suspends it. Sleep(0) only gives up the slice and counts as a yield.
func (k *Kernel) Sleep(ticks uint32) {
	s := k.port.DisableInterrupts()
	k.threads[k.run].sleep = ticks
	if ticks == 0 {
		k.yields++
	}
	k.port.RestoreInterrupts(s)
	k.Suspend()
}

// Idle is the body of an idle thread: it stays eligible forever and waits for
// interrupts.
func (k *Kernel) Idle() {
	for {
		k.port.WaitForInterrupt()
	}
}
