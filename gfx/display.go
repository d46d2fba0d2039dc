// Package gfx draws into a hal.Framebuffer through the TinyGo drivers
// Displayer interfaces, so tinyfont and tinyterm can render onto it.
package gfx

import (
	"image/color"

	"pongos/hal"

	"tinygo.org/x/drivers"
)

var (
	Black = color.RGBA{A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, A: 255}
	Green = color.RGBA{G: 255, A: 255}
)

// FB adapts an RGB565 framebuffer. It has no hardware scroll; Display
// presents the frame.
type FB struct {
	fb hal.Framebuffer
}

func New(fb hal.Framebuffer) *FB {
	return &FB{fb: fb}
}

func (d *FB) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FB) ok() bool {
	return d.fb != nil && d.fb.Format() == hal.PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *FB) SetPixel(x, y int16, c color.RGBA) {
	if !d.ok() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	buf := d.fb.Buffer()
	pixel := hal.RGB565Color(c)
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Pixel returns the colour at x, y as RGB565, or 0 outside the frame.
func (d *FB) Pixel(x, y int) uint16 {
	if !d.ok() || x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return 0
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func (d *FB) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// Clear fills the whole frame with c.
func (d *FB) Clear(c color.RGBA) {
	if d.fb != nil {
		d.fb.ClearRGB(c.R, c.G, c.B)
	}
}

func (d *FB) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.ok() {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565Color(c)
	lo, hi := byte(pixel), byte(pixel>>8)

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// ScrollUp moves the frame up by lines and clears the exposed rows with bg.
func (d *FB) ScrollUp(lines int16, bg color.RGBA) error {
	if !d.ok() || lines <= 0 {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	n := int(lines)
	if n >= h {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	copy(buf[:(h-n)*stride], buf[n*stride:h*stride])
	return d.FillRectangle(0, int16(h-n), int16(w), int16(n), bg)
}

func (d *FB) SetScroll(line int16) {}

func (d *FB) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return hal.ErrNotImplemented
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
