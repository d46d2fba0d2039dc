package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the small bitmap font used for all on-screen text.
var Font *tinyfont.Font = &proggy.TinySZ8pt7b

// Text metrics for Font: rows are LineHeight apart and the baseline sits
// Baseline pixels below the top of a row.
const (
	LineHeight = 10
	Baseline   = 7
)

// DrawText writes s with its top-left corner at x, y.
func DrawText(d drivers.Displayer, x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, x, y+Baseline, s, c)
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int16 {
	_, w := tinyfont.LineWidth(Font, s)
	return int16(w)
}
