package pong

func (g *Game) movePaddle(stickX uint16) {
	switch {
	case stickX < stickLeft && g.paddleX > WallWidth:
		g.paddleX -= PaddleStep
	case stickX > stickRight && g.paddleX < ScreenWidth-PaddleWidth-WallWidth:
		g.paddleX += PaddleStep
	}
}
