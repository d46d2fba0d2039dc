//go:build !tinygo && !cgo

package hal

func (j *hostJoystick) pollKeyboard() (quit bool) {
	// No keyboard support without the window backend.
	return false
}
