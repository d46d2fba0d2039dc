//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Board wiring (Raspberry Pi Pico):
//
//	UART0   GP0 TX / GP1 RX, 115200 8N1
//	ST7735  SPI0 GP18 SCK / GP19 SDO, GP17 CS, GP16 DC, GP20 RST, GP21 BL
//	stick   ADC0 (GP26) X, ADC1 (GP27) Y, GP14 select, GP15 button
//	link    GP2 TX, GP3 RX
//	buzzer  GP4 (PWM)
type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	fb     Framebuffer
	joy    Joystick
	link   Link
	buzzer Buzzer
	cpu    *CPU
}

// New returns the board HAL. opts.Link is ignored: the link pins are real.
func New(opts Options) (HAL, error) {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Frequency: 16_000_000,
	}); err != nil {
		return nil, err
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		fb:     newST7735Framebuffer(spi, machine.GP20, machine.GP16, machine.GP17, machine.GP21),
		joy:    newADCJoystick(machine.ADC0, machine.ADC1, machine.GP14, machine.GP15),
		link: pinLink{
			tx: newMachinePin("TX", machine.GP2),
			rx: newMachinePin("RX", machine.GP3),
		},
		buzzer: newPWMBuzzer(machine.GP4),
		cpu:    NewCPU(CPUConfig{TickLimit: opts.TickLimit}),
	}, nil
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) Display() Display   { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Joystick() Joystick { return h.joy }
func (h *tinyGoHAL) Link() Link         { return h.link }
func (h *tinyGoHAL) Buzzer() Buzzer     { return h.buzzer }
func (h *tinyGoHAL) Port() *CPU         { return h.cpu }
