package kernel

// Semaphore is a counting semaphore. A negative value is minus the number
// of threads blocked on it.
//
// It must be initialized with InitSemaphore before first use and must not be
// copied afterwards: threads block on its address.
type Semaphore struct {
	noCopy noCopy
	value  int32
}

// noCopy makes go vet's copylocks check flag copies of the embedding struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Value returns the current count.
func (s *Semaphore) Value() int32 { return s.value }

// InitSemaphore sets the semaphore count.
func (k *Kernel) InitSemaphore(sem *Semaphore, value int32) {
	s := k.port.DisableInterrupts()
	sem.value = value
	k.port.RestoreInterrupts(s)
}

// Wait decrements the count and blocks the calling thread while the result
// is negative. There is no timeout.
func (k *Kernel) Wait(sem *Semaphore) {
	s := k.port.DisableInterrupts()
	sem.value--
	if sem.value >= 0 {
		k.port.RestoreInterrupts(s)
		return
	}
	k.threads[k.run].blocked = sem
	k.port.RestoreInterrupts(s)
	k.Suspend()
}

// Signal increments the count and unblocks the first thread in list order
// that is blocked on sem, if any. It may be called from periodic events.
func (k *Kernel) Signal(sem *Semaphore) {
	s := k.port.DisableInterrupts()
	defer k.port.RestoreInterrupts(s)

	sem.value++
	for i := range k.threads {
		if k.threads[i].blocked == sem {
			k.threads[i].blocked = nil
			return
		}
	}
}
