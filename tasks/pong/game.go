// Package pong is the paddle-and-balls game. Update runs from a periodic
// kernel event; everything else reads its state from thread context.
package pong

import (
	"sync/atomic"

	"pongos/hal"
)

const (
	ScreenWidth  = hal.ScreenWidth
	ScreenHeight = hal.ScreenHeight
	WallWidth    = 2

	BallSize = 4
	MaxBalls = 4

	PaddleY      = 120
	PaddleWidth  = 20
	PaddleHeight = 5
	PaddleStep   = 2

	// Stick thresholds for moving the paddle.
	stickLeft  = 400
	stickRight = 600

	// A ball whose top reaches this row has left the field.
	dropLine = ScreenHeight - 5
)

type Ball struct {
	X, Y         int
	PrevX, PrevY int
	DX, DY       int
	Active       bool
}

// Game holds the whole playfield. It is not safe for concurrent use except
// for RequestSpawn.
type Game struct {
	paddleX int
	balls   [MaxBalls]Ball
	score   uint32
	nudge   int

	lastButton bool
	lastSelect bool

	peerSpawns atomic.Uint32

	emit func(Event) bool
	tick uint64
}

// New returns a game with the paddle centred and no balls. emit receives
// every event Update produces; it must not block.
func New(emit func(Event) bool) *Game {
	if emit == nil {
		emit = func(Event) bool { return true }
	}
	g := &Game{emit: emit}
	g.Reset()
	return g
}

// Reset centres the paddle, removes every ball and zeroes the score.
func (g *Game) Reset() {
	g.paddleX = (ScreenWidth - PaddleWidth) / 2
	for i := range g.balls {
		g.balls[i] = Ball{}
	}
	g.score = 0
	g.nudge = 0
}

// RequestSpawn queues a ball for the next Update. Safe from any thread.
func (g *Game) RequestSpawn() {
	g.peerSpawns.Add(1)
}

// Update advances the game by one frame using the latest stick sample.
func (g *Game) Update(js hal.JoystickState) {
	g.tick++
	g.movePaddle(js.X)

	if js.Button && !g.lastButton {
		g.send(Event{Kind: EventSpawn, Spawned: g.Spawn()})
	}
	g.lastButton = js.Button

	for n := g.peerSpawns.Swap(0); n > 0; n-- {
		g.send(Event{Kind: EventPeerSpawn, Spawned: g.Spawn()})
	}

	if js.Select && !g.lastSelect {
		g.ClearBalls()
		g.score = 0
		g.send(Event{Kind: EventReset})
	}
	g.lastSelect = js.Select

	before := g.score
	for i := range g.balls {
		if g.balls[i].Active {
			g.updateBall(&g.balls[i])
		}
	}
	if g.score != before {
		g.send(Event{Kind: EventScore})
	}
}

func (g *Game) send(ev Event) {
	ev.Frame = g.tick
	ev.Score = g.score
	g.emit(ev)
}

// Spawn puts a ball at the centre moving up and right. It reports false when
// every slot is taken.
func (g *Game) Spawn() bool {
	for i := range g.balls {
		b := &g.balls[i]
		if b.Active {
			continue
		}
		*b = Ball{
			X: ScreenWidth / 2, Y: ScreenHeight / 2,
			PrevX: ScreenWidth / 2, PrevY: ScreenHeight / 2,
			DX: 1, DY: -1,
			Active: true,
		}
		return true
	}
	return false
}

// ClearBalls removes every ball without scoring.
func (g *Game) ClearBalls() {
	for i := range g.balls {
		g.balls[i].Active = false
	}
}

func (g *Game) Score() uint32 { return g.score }
func (g *Game) PaddleX() int  { return g.paddleX }
func (g *Game) Frame() uint64 { return g.tick }

// Balls returns a copy of the active balls.
func (g *Game) Balls() []Ball {
	out := make([]Ball, 0, MaxBalls)
	for _, b := range g.balls {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}
