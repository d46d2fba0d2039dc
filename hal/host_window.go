//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"
	"os"

	"pongos/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 4

// RunWindow starts a desktop window that displays the framebuffer and maps the
// keyboard onto the joystick. run executes on its own goroutine; the window
// closes when it returns, and closing the window cancels its context.
func RunWindow(ctx context.Context, opts Options, run func(context.Context, HAL) error) error {
	h, err := newHostHAL(opts, os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	g := &hostGame{h: h, ctx: ctx, done: done}
	ebiten.SetWindowTitle("pongos (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*windowScale, h.fb.height*windowScale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if g.finished {
		return g.err
	}
	cancel()
	return <-done
}

type hostGame struct {
	h     *hostHAL
	ctx   context.Context
	done  <-chan error
	img   *image.RGBA
	fbImg *ebiten.Image

	scratch []byte
	seq     uint64

	finished bool
	err      error
}

func (g *hostGame) Update() error {
	if g.h.joy.pollKeyboard() {
		return ebiten.Termination
	}
	select {
	case err := <-g.done:
		g.finished = true
		g.err = err
		return ebiten.Termination
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	if seq := fb.snapshotRGB565(g.scratch); seq != g.seq {
		g.seq = seq
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
