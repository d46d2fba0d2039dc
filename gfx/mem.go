package gfx

import "pongos/hal"

// MemFramebuffer is an RGB565 framebuffer in plain memory. Present only
// counts frames.
type MemFramebuffer struct {
	w, h     int
	buf      []byte
	Presents int
}

func NewMemFramebuffer(w, h int) *MemFramebuffer {
	return &MemFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *MemFramebuffer) Width() int              { return f.w }
func (f *MemFramebuffer) Height() int             { return f.h }
func (f *MemFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *MemFramebuffer) Buffer() []byte          { return f.buf }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *MemFramebuffer) Present() error {
	f.Presents++
	return nil
}
