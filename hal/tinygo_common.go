//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin adapts a board pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	caps GPIOCaps
	mode GPIOMode
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin, caps: GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	var m machine.PinMode
	switch mode {
	case GPIOModeOutput:
		m = machine.PinOutput
	case GPIOModeInput:
		switch pull {
		case GPIOPullNone:
			m = machine.PinInput
		case GPIOPullUp:
			m = machine.PinInputPullup
		case GPIOPullDown:
			m = machine.PinInputPulldown
		default:
			return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// adcJoystick samples a two-axis analog stick and two active-low buttons.
type adcJoystick struct {
	x, y   machine.ADC
	sel    machine.Pin
	button machine.Pin
}

func newADCJoystick(x, y, sel, button machine.Pin) *adcJoystick {
	machine.InitADC()
	j := &adcJoystick{
		x:      machine.ADC{Pin: x},
		y:      machine.ADC{Pin: y},
		sel:    sel,
		button: button,
	}
	j.x.Configure(machine.ADCConfig{})
	j.y.Configure(machine.ADCConfig{})
	sel.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return j
}

func (j *adcJoystick) Read() JoystickState {
	return JoystickState{
		X:      j.x.Get() >> 6,
		Y:      j.y.Get() >> 6,
		Select: !j.sel.Get(),
		Button: !j.button.Get(),
	}
}
