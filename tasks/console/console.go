// Package console renders a scrolling text trace on the display with
// tinyterm. It keeps a bounded history so a full screen can be wiped and
// resumed with the most recent lines still visible.
package console

import (
	"unicode/utf8"

	"pongos/gfx"
	"pongos/kernel"

	"github.com/gammazero/deque"
	"tinygo.org/x/tinyterm"
)

// DefaultHistory is the number of lines kept when New is given zero.
const DefaultHistory = 64

// Console is shared by several threads; a binary semaphore serializes them.
// Println must not be called from periodic events.
type Console struct {
	k    *kernel.Kernel
	lock kernel.Semaphore

	d    *gfx.FB
	term *tinyterm.Terminal
	cfg  tinyterm.Config

	rows int
	cols int
	used int

	history deque.Deque[string]
	keep    int
	total   uint64
}

func New(k *kernel.Kernel, d *gfx.FB, history int) *Console {
	if history <= 0 {
		history = DefaultHistory
	}
	c := &Console{
		k:    k,
		d:    d,
		term: tinyterm.NewTerminal(d),
		cfg: tinyterm.Config{
			Font:       gfx.Font,
			FontHeight: gfx.LineHeight,
			FontOffset: gfx.Baseline,
		},
		keep: history,
	}
	k.InitSemaphore(&c.lock, 1)

	w, h := d.Size()
	// The last row is never written: a newline there would scroll.
	c.rows = int(h)/gfx.LineHeight - 1
	if c.rows < 1 {
		c.rows = 1
	}
	if cw := int(gfx.TextWidth("0")); cw > 0 {
		c.cols = int(w) / cw
	}
	c.reset()
	return c
}

func (c *Console) reset() {
	c.d.Clear(gfx.Black)
	c.term.Configure(&c.cfg)
	c.used = 0
}

// Println appends one line, truncated to the screen width.
func (c *Console) Println(s string) {
	c.k.Wait(&c.lock)
	defer c.k.Signal(&c.lock)

	s = truncate(s, c.cols)
	c.history.PushBack(s)
	for c.history.Len() > c.keep {
		c.history.PopFront()
	}
	c.total++

	if c.used >= c.rows {
		c.reset()
		// Replay the newer half of the screen, excluding s.
		n := c.rows / 2
		if m := c.history.Len() - 1; n > m {
			n = m
		}
		for i := c.history.Len() - 1 - n; i < c.history.Len()-1; i++ {
			c.write(c.history.At(i))
		}
	}
	c.write(s)
}

func (c *Console) write(s string) {
	c.term.Write([]byte(s))
	c.term.Write([]byte("\r\n"))
	c.used++
}

// Lines returns the retained history, oldest first.
func (c *Console) Lines() []string {
	c.k.Wait(&c.lock)
	defer c.k.Signal(&c.lock)

	out := make([]string, c.history.Len())
	for i := range out {
		out[i] = c.history.At(i)
	}
	return out
}

// Total returns how many lines were ever printed.
func (c *Console) Total() uint64 {
	c.k.Wait(&c.lock)
	defer c.k.Signal(&c.lock)
	return c.total
}

func truncate(s string, cols int) string {
	if cols <= 0 || utf8.RuneCountInString(s) <= cols {
		return s
	}
	i, n := 0, 0
	for i < len(s) && n < cols {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n++
	}
	return s[:i]
}
