package console

import (
	"fmt"
	"testing"

	"pongos/gfx"
	"pongos/hal"
	"pongos/kernel"

	"tinygo.org/x/tinyfont"
)

func newConsole(t *testing.T, history int) (*Console, *gfx.FB) {
	t.Helper()
	k := kernel.New(hal.NewCPU(hal.CPUConfig{}), kernel.Config{Threads: 1})
	d := gfx.New(gfx.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight))
	return New(k, d, history), d
}

func litPixels(d *gfx.FB) int {
	w, h := d.Size()
	n := 0
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			if d.Pixel(x, y) != 0 {
				n++
			}
		}
	}
	return n
}

func TestPrintlnDraws(t *testing.T) {
	c, d := newConsole(t, 0)
	if n := litPixels(d); n != 0 {
		t.Fatalf("lit pixels before Println = %d, want 0", n)
	}

	c.Println("kernel: up")

	if litPixels(d) == 0 {
		t.Fatal("Println drew nothing")
	}
	if got := c.Lines(); len(got) != 1 || got[0] != "kernel: up" {
		t.Fatalf("Lines() = %q, want [kernel: up]", got)
	}
}

func TestHistoryBounded(t *testing.T) {
	c, _ := newConsole(t, 5)
	for i := 0; i < 12; i++ {
		c.Println(fmt.Sprintf("line %d", i))
	}

	got := c.Lines()
	if len(got) != 5 {
		t.Fatalf("len(Lines()) = %d, want 5", len(got))
	}
	for i, s := range got {
		if want := fmt.Sprintf("line %d", i+7); s != want {
			t.Fatalf("Lines()[%d] = %q, want %q", i, s, want)
		}
	}
	if got := c.Total(); got != 12 {
		t.Fatalf("Total() = %d, want 12", got)
	}
}

func TestFullScreenReplaysRecentLines(t *testing.T) {
	c, _ := newConsole(t, 0)

	for i := 0; i < c.rows; i++ {
		c.Println(fmt.Sprintf("line %d", i))
	}
	if c.used != c.rows {
		t.Fatalf("used = %d, want %d", c.used, c.rows)
	}

	c.Println("next")
	if want := c.rows/2 + 1; c.used != want {
		t.Fatalf("used after wrap = %d, want %d", c.used, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("truncate() = %q, want %q", got, "abcd")
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Fatalf("truncate() = %q, want %q", got, "ab")
	}
	if got := truncate("жжжж", 2); got != "жж" {
		t.Fatalf("truncate() = %q, want %q", got, "жж")
	}
}

func TestLockReleased(t *testing.T) {
	c, _ := newConsole(t, 0)
	c.Println("a")
	c.Lines()
	if got := c.lock.Value(); got != 1 {
		t.Fatalf("lock value = %d, want 1", got)
	}
}

func TestTerminalUsesGfxFont(t *testing.T) {
	c, _ := newConsole(t, 0)
	var font *tinyfont.Font = c.cfg.Font
	if font != gfx.Font {
		t.Fatal("terminal font is not gfx.Font")
	}
	if c.cfg.FontHeight != gfx.LineHeight || c.cfg.FontOffset != gfx.Baseline {
		t.Fatalf("font metrics = %d/%d, want %d/%d", c.cfg.FontHeight, c.cfg.FontOffset, gfx.LineHeight, gfx.Baseline)
	}
}
