package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes a fatal kernel condition.
type PanicInfo struct {
	// Slot is the thread that was running.
	Slot  int
	Value any
	Stack []byte
}

type panicState struct {
	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Value // func(PanicInfo)
}

// InPanicMode reports whether the kernel has hit a fatal condition.
func (k *Kernel) InPanicMode() bool {
	return k.panicActive.Load()
}

// SetPanicHandler installs the fatal-condition handler.
//
// The handler is invoked at most once (on the first fatal condition) from
// whatever context detected it. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panicHandler.Store(fn)
}

// fatal reports v and halts the core.
func (k *Kernel) fatal(slot int, v any) {
	k.panicOnce.Do(func() {
		k.panicActive.Store(true)
		info := PanicInfo{Slot: slot, Value: v, Stack: captureStack()}
		if h := k.panicHandler.Load(); h != nil {
			if fn, ok := h.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
	k.port.Halt()
}
