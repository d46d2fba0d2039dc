package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pongos/gfx"
	"pongos/kernel"
)

// installPanicHandler logs the fatal condition and paints it on the display.
// The kernel halts the core after the handler returns.
func (s *system) installPanicHandler() {
	s.k.SetPanicHandler(func(info kernel.PanicInfo) {
		s.fatal = &info

		lines := panicLines(info)
		for _, line := range lines {
			s.printf("%s", line)
		}

		w, h := s.d.Size()
		if w <= 0 || h <= 0 {
			return
		}
		s.d.Clear(gfx.Red)

		cols := int(w) / int(gfx.TextWidth("0"))
		if cols <= 0 {
			cols = 1
		}
		y := int16(0)
	draw:
		for _, line := range lines {
			for line != "" {
				if y+gfx.LineHeight > h {
					break draw
				}
				chunk, rest := takeRunes(line, cols)
				gfx.DrawText(s.d, 0, y, chunk, gfx.White)
				y += gfx.LineHeight
				line = strings.TrimLeft(rest, " \t")
			}
		}
		_ = s.d.Display()
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"pongos panic:",
		fmt.Sprintf("thread: %d", info.Slot),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
