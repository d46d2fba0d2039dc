//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	fb     *hostFramebuffer
	joy    *hostJoystick
	link   Link
	buzzer Buzzer
	cpu    *CPU
}

// New returns a host HAL implementation.
func New(opts Options) (HAL, error) {
	return newHostHAL(opts, os.Stdout)
}

func newHostHAL(opts Options, w io.Writer) (*hostHAL, error) {
	link, err := newVirtualLink(opts.Link)
	if err != nil {
		return nil, err
	}
	logger := &hostLogger{w: w}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newHostFramebuffer(ScreenWidth, ScreenHeight),
		joy:    newHostJoystick(),
		link:   link,
		buzzer: newHostBuzzer(),
		cpu:    NewCPU(CPUConfig{TickLimit: opts.TickLimit}),
	}, nil
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Joystick() Joystick { return h.joy }
func (h *hostHAL) Link() Link         { return h.link }
func (h *hostHAL) Buzzer() Buzzer     { return h.buzzer }
func (h *hostHAL) Port() *CPU         { return h.cpu }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED logs level changes only.
type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on == on {
		return
	}
	l.on = on
	if on {
		l.logger.WriteLineString("led: HIGH")
	} else {
		l.logger.WriteLineString("led: LOW")
	}
}
