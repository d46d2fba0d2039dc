package kernel

import "time"

// Frame is a saved execution context. It is only meaningful to the Port that
// built it and is valid only while its thread is not running.
type Frame any

// IRQState is the interrupt mask state returned by DisableInterrupts.
type IRQState uint32

// Port is the platform half of the kernel: board bring-up, the tick timer,
// the interrupt mask and context transfer.
//
// The scheduler never looks inside a Frame.
type Port interface {
	// BringUp runs the one-time clock/board initialization.
	BringUp()

	// NewFrame builds the initial context for slot. The first transfer into
	// the frame starts entry.
	NewFrame(slot int, entry func()) Frame

	// Switch saves the running context into from and resumes to.
	// It is called with interrupts disabled.
	Switch(from, to Frame)

	// Start arms a periodic tick that calls tick every slice and transfers
	// into first. It does not return while the system runs.
	Start(first Frame, slice time.Duration, tick func()) error

	// DisableInterrupts masks the tick and returns the previous state.
	DisableInterrupts() IRQState

	// RestoreInterrupts restores a state returned by DisableInterrupts.
	// A tick that became pending while masked is delivered when the mask
	// drops to zero.
	RestoreInterrupts(IRQState)

	// PendTick requests a tick now and restarts the slice.
	PendTick()

	// WaitForInterrupt idles the core until the next tick is delivered.
	WaitForInterrupt()

	// Halt stops the core for good. It does not return.
	Halt()
}
