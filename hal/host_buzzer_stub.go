//go:build !tinygo && !cgo

package hal

// Audio needs the cgo backends.
func newHostBuzzer() Buzzer { return nullBuzzer{} }
