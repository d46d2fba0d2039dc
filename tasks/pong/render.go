package pong

import (
	"strconv"

	"pongos/gfx"
)

// Render draws the playfield into d. It does not present.
func (g *Game) Render(d *gfx.FB) {
	d.Clear(gfx.Black)

	d.FillRectangle(0, 0, WallWidth, ScreenHeight, gfx.White)
	d.FillRectangle(ScreenWidth-WallWidth, 0, WallWidth, ScreenHeight, gfx.White)
	d.FillRectangle(0, 0, ScreenWidth, WallWidth, gfx.White)

	d.FillRectangle(int16(g.paddleX), PaddleY, PaddleWidth, PaddleHeight, gfx.White)

	for _, b := range g.balls {
		if b.Active {
			d.FillRectangle(int16(b.X), int16(b.Y), BallSize, BallSize, gfx.White)
		}
	}

	label := "Score:"
	gfx.DrawText(d, WallWidth+1, WallWidth+1, label, gfx.White)
	gfx.DrawText(d, WallWidth+1+gfx.TextWidth(label+" "), WallWidth+1, strconv.FormatUint(uint64(g.score), 10), gfx.White)
}
