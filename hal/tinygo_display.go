//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/st7735"
)

// st7735Framebuffer keeps a little-endian RGB565 frame in RAM and pushes it
// to the panel on Present.
type st7735Framebuffer struct {
	w, h int
	buf  []byte
	tx   []byte
	lcd  *st7735.Device
}

func newST7735Framebuffer(spi *machine.SPI, rst, dc, cs, bl machine.Pin) *st7735Framebuffer {
	lcd := st7735.New(spi, rst, dc, cs, bl)
	lcd.Configure(st7735.Config{Width: ScreenWidth, Height: ScreenHeight})

	return &st7735Framebuffer{
		w:   ScreenWidth,
		h:   ScreenHeight,
		buf: make([]byte, ScreenWidth*ScreenHeight*2),
		tx:  make([]byte, ScreenWidth*ScreenHeight*2),
		lcd: &lcd,
	}
}

func (f *st7735Framebuffer) Width() int          { return f.w }
func (f *st7735Framebuffer) Height() int         { return f.h }
func (f *st7735Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *st7735Framebuffer) StrideBytes() int    { return f.w * 2 }
func (f *st7735Framebuffer) Buffer() []byte      { return f.buf }

func (f *st7735Framebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, RGB565(r, g, b))
}

func (f *st7735Framebuffer) Present() error {
	// The frame is stored little-endian; the panel expects big-endian.
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.tx[i] = f.buf[i+1]
		f.tx[i+1] = f.buf[i]
	}
	return f.lcd.DrawRGBBitmap8(0, 0, f.tx, int16(f.w), int16(f.h))
}

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }
