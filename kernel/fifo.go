package kernel

// Fifo is a bounded single-producer/single-consumer queue. The producer is
// typically a periodic event; the consumer is a main thread.
//
// Put never blocks: a full queue drops the item and counts it as lost.
// Get blocks on a semaphore whose value tracks the number of items.
type Fifo[T any] struct {
	k *Kernel

	putI  int
	getI  int
	size  int
	lost  uint32
	slots []T

	items Semaphore
}

// NewFifo allocates a queue with the given capacity and initializes it.
// A non-positive capacity takes FifoSize.
func NewFifo[T any](k *Kernel, capacity int) *Fifo[T] {
	if capacity <= 0 {
		capacity = FifoSize
	}
	f := &Fifo[T]{k: k, slots: make([]T, capacity)}
	f.Init()
	return f
}

// Init empties the queue and clears the lost counter.
func (f *Fifo[T]) Init() {
	s := f.k.port.DisableInterrupts()
	f.putI = 0
	f.getI = 0
	f.size = 0
	f.lost = 0
	f.k.port.RestoreInterrupts(s)
	f.k.InitSemaphore(&f.items, 0)
}

// Put appends item, returning false if the queue is full.
func (f *Fifo[T]) Put(item T) bool {
	s := f.k.port.DisableInterrupts()
	defer f.k.port.RestoreInterrupts(s)

	if f.size == len(f.slots) {
		f.lost++
		return false
	}
	f.slots[f.putI] = item
	f.putI = (f.putI + 1) % len(f.slots)
	f.size++
	f.k.Signal(&f.items)
	return true
}

// Get removes the oldest item, blocking the calling thread while the queue
// is empty.
func (f *Fifo[T]) Get() T {
	f.k.Wait(&f.items)

	s := f.k.port.DisableInterrupts()
	defer f.k.port.RestoreInterrupts(s)

	item := f.slots[f.getI]
	var zero T
	f.slots[f.getI] = zero
	f.getI = (f.getI + 1) % len(f.slots)
	f.size--
	return item
}

// Size returns the number of queued items.
func (f *Fifo[T]) Size() int {
	s := f.k.port.DisableInterrupts()
	defer f.k.port.RestoreInterrupts(s)
	return f.size
}

// Lost returns how many items Put dropped because the queue was full.
func (f *Fifo[T]) Lost() uint32 {
	s := f.k.port.DisableInterrupts()
	defer f.k.port.RestoreInterrupts(s)
	return f.lost
}

// Cap returns the queue capacity.
func (f *Fifo[T]) Cap() int { return len(f.slots) }
