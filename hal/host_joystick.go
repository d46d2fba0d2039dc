//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type control uint8

const (
	ctlNone control = iota
	ctlLeft
	ctlRight
	ctlUp
	ctlDown
	ctlButton
	ctlSelect
	ctlQuit
	numControls
)

// ttyHold is how long a terminal key press keeps a control active. Terminals
// report presses only, never releases.
const ttyHold = 150 * time.Millisecond

// hostJoystick merges held controls from the window with timed pulses from
// the terminal.
type hostJoystick struct {
	mu    sync.Mutex
	now   func() time.Time
	held  [numControls]bool
	until [numControls]time.Time
}

func newHostJoystick() *hostJoystick {
	return &hostJoystick{now: time.Now}
}

func (j *hostJoystick) Read() JoystickState {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	on := func(c control) bool { return j.held[c] || now.Before(j.until[c]) }

	st := JoystickState{X: JoystickCenter, Y: JoystickCenter}
	switch {
	case on(ctlLeft) && !on(ctlRight):
		st.X = 0
	case on(ctlRight) && !on(ctlLeft):
		st.X = JoystickMax
	}
	switch {
	case on(ctlDown) && !on(ctlUp):
		st.Y = 0
	case on(ctlUp) && !on(ctlDown):
		st.Y = JoystickMax
	}
	st.Button = on(ctlButton)
	st.Select = on(ctlSelect)
	return st
}

func (j *hostJoystick) hold(c control, down bool) {
	j.mu.Lock()
	j.held[c] = down
	j.mu.Unlock()
}

func (j *hostJoystick) pulse(c control) {
	j.mu.Lock()
	j.until[c] = j.now().Add(ttyHold)
	j.mu.Unlock()
}
