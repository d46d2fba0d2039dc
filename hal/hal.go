package hal

import (
	"errors"
	"time"

	"pongos/kernel"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Screen geometry of the reference board.
const (
	ScreenWidth  = 128
	ScreenHeight = 160
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Joystick axis range. The centre rests near JoystickMax/2.
const (
	JoystickMax    = 1023
	JoystickCenter = 512
)

// JoystickState is one sample of the analog stick and its buttons.
type JoystickState struct {
	X, Y   uint16
	Select bool // stick pressed in
	Button bool // separate push button
}

// Joystick samples the analog stick. Read never blocks.
type Joystick interface {
	Read() JoystickState
}

// Buzzer plays a square tone without blocking the caller.
type Buzzer interface {
	Beep(hz int, d time.Duration)
}

// Link is the pair of pins wired to a peer board.
type Link interface {
	TX() GPIOPin
	RX() GPIOPin
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Joystick() Joystick
	Link() Link
	Buzzer() Buzzer
	// Port is the core the kernel runs on.
	Port() *CPU
}

var _ kernel.Port = (*CPU)(nil)

type pinLink struct {
	tx, rx GPIOPin
}

func (l pinLink) TX() GPIOPin { return l.tx }
func (l pinLink) RX() GPIOPin { return l.rx }

type nullBuzzer struct{}

func (nullBuzzer) Beep(int, time.Duration) {}
