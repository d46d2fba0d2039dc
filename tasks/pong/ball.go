package pong

// nudges shift a ball sideways after every bounce so trajectories vary.
// Only the first nudgeSpan entries are used.
var nudges = [...]int{-9, 5, -3, 3, 7, 0, -7, 9}

const nudgeSpan = 5

const (
	minBallX = WallWidth + 1
	maxBallX = ScreenWidth - BallSize - WallWidth - 1
)

func (g *Game) applyNudge(b *Ball) {
	d := nudges[g.nudge]
	g.nudge = (g.nudge + 1) % nudgeSpan

	b.X += d
	if b.X < minBallX {
		b.X = minBallX
	}
	if b.X > maxBallX {
		b.X = maxBallX
	}
}

func (g *Game) updateBall(b *Ball) {
	b.X += b.DX
	b.Y += b.DY

	if b.Y >= dropLine {
		b.Active = false
		g.score++
		return
	}

	if b.X <= WallWidth {
		b.X = minBallX
		b.DX = -b.DX
		g.applyNudge(b)
	} else if b.X >= ScreenWidth-BallSize-WallWidth {
		b.X = maxBallX
		b.DX = -b.DX
		g.applyNudge(b)
	}

	if b.Y <= WallWidth {
		b.DY = -b.DY
		g.applyNudge(b)
	}

	// Only a ball crossing the paddle's top edge on the way down bounces.
	topHit := b.DY > 0 &&
		b.PrevY+BallSize < PaddleY &&
		b.Y+BallSize >= PaddleY
	if topHit && b.X+BallSize >= g.paddleX && b.X <= g.paddleX+PaddleWidth {
		b.DY = -b.DY
		b.Y = PaddleY - BallSize - 1
		g.applyNudge(b)
	}

	b.PrevX = b.X
	b.PrevY = b.Y
}
