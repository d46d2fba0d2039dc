package kernel

type periodicEntry struct {
	fn      func()
	period  uint32
	counter uint32
	runs    uint64
}

// AddPeriodicEventThread registers fn to run every period ticks from the
// scheduler tick, before Launch.
//
// fn runs to completion in interrupt context. It must not block, sleep, spin
// or Wait; it may Signal and Put.
func (k *Kernel) AddPeriodicEventThread(fn func(), period uint32) error {
	if fn == nil {
		return ErrNilThread
	}
	if period == 0 {
		return ErrBadPeriod
	}

	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)

	if k.launched {
		return ErrLaunched
	}
	if k.nperiodic >= len(k.periodic) {
		return ErrPeriodicFull
	}
	k.periodic[k.nperiodic] = periodicEntry{fn: fn, period: period, counter: period}
	k.nperiodic++
	return nil
}

// runPeriodic fires due entries in registration order. Called from tick.
func (k *Kernel) runPeriodic() {
	for i := 0; i < k.nperiodic; i++ {
		p := &k.periodic[i]
		if p.counter == 0 {
			continue
		}
		p.counter--
		if p.counter == 0 {
			p.fn()
			p.runs++
			p.counter = p.period
		}
	}
}
