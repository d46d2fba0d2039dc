//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// pwmBuzzer drives a piezo with a 50% duty square wave.
type pwmBuzzer struct {
	pin machine.Pin
	pwm pwmDevice
	ch  uint8
	off *time.Timer
}

func newPWMBuzzer(pin machine.Pin) Buzzer {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nullBuzzer{}
	}
	return &pwmBuzzer{pin: pin, pwm: pwm}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (b *pwmBuzzer) Beep(hz int, d time.Duration) {
	if hz <= 0 || d <= 0 {
		return
	}
	if err := b.pwm.Configure(machine.PWMConfig{Period: uint64(1e9 / hz)}); err != nil {
		return
	}
	ch, err := b.pwm.Channel(b.pin)
	if err != nil {
		return
	}
	b.ch = ch
	b.pwm.Set(b.ch, b.pwm.Top()/2)
	b.pwm.Enable(true)

	if b.off != nil {
		b.off.Stop()
	}
	b.off = time.AfterFunc(d, func() { b.pwm.Set(b.ch, 0) })
}
