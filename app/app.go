// Package app wires the pong demo onto the kernel: six threads, two periodic
// events and the event queue between them.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pongos/gfx"
	"pongos/hal"
	"pongos/internal/buildinfo"
	"pongos/kernel"
	"pongos/tasks/console"
	"pongos/tasks/link"
	"pongos/tasks/pong"
)

// Config tunes the demo. Periods are in ticks.
type Config struct {
	Slice         time.Duration
	FramePeriod   uint32
	LinkPeriod    uint32
	PresentPeriod uint32
	StatsPeriod   uint32

	// Console shows the event trace instead of the playfield.
	Console bool
	History int
}

// DefaultConfig matches the reference board: 1 ms ticks and a ~30 Hz frame.
func DefaultConfig() Config {
	return Config{
		Slice:         time.Millisecond,
		FramePeriod:   33,
		LinkPeriod:    33,
		PresentPeriod: 33,
		StatsPeriod:   5000,
		History:       console.DefaultHistory,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Slice <= 0 {
		c.Slice = d.Slice
	}
	if c.FramePeriod == 0 {
		c.FramePeriod = d.FramePeriod
	}
	if c.LinkPeriod == 0 {
		c.LinkPeriod = d.LinkPeriod
	}
	if c.PresentPeriod == 0 {
		c.PresentPeriod = d.PresentPeriod
	}
	if c.StatsPeriod == 0 {
		c.StatsPeriod = d.StatsPeriod
	}
	if c.History <= 0 {
		c.History = d.History
	}
	return c
}

type system struct {
	h   hal.HAL
	cfg Config
	k   *kernel.Kernel
	d   *gfx.FB
	log hal.Logger

	game   *pong.Game
	events *kernel.Fifo[pong.Event]
	link   *link.Task
	con    *console.Console

	fatal *kernel.PanicInfo
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	cfg = cfg.withDefaults()
	s := &system{
		h:   h,
		cfg: cfg,
		k:   kernel.New(h.Port(), kernel.Config{}),
		log: h.Logger(),
	}
	if disp := h.Display(); disp != nil {
		s.d = gfx.New(disp.Framebuffer())
	} else {
		s.d = gfx.New(nil)
	}
	s.events = kernel.NewFifo[pong.Event](s.k, kernel.FifoSize)
	s.game = pong.New(s.events.Put)

	lt, err := link.New(s.k, h.Link(), h.LED(), s.log, s.game.RequestSpawn)
	if err != nil {
		return nil, err
	}
	s.link = lt

	if cfg.Console {
		s.con = console.New(s.k, s.d, cfg.History)
	}
	s.installPanicHandler()

	if err := s.k.AddThreads(
		s.link.Run,
		s.eventLoop,
		s.presentLoop,
		s.monitorLoop,
		s.k.Idle,
		s.k.Idle,
	); err != nil {
		return nil, err
	}
	if err := s.k.AddPeriodicEventThread(s.frame, cfg.FramePeriod); err != nil {
		return nil, err
	}
	if err := s.k.AddPeriodicEventThread(s.link.Signal, cfg.LinkPeriod); err != nil {
		return nil, err
	}
	return s, nil
}

// Run launches the kernel on h and blocks until ctx is cancelled, the port
// stops by itself, or a fatal error halts the core.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	s, err := newSystem(h, cfg)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	s.printf("%s: %d threads, slice %v, frame every %d ticks",
		buildinfo.String(), kernel.NumThreads, s.cfg.Slice, s.cfg.FramePeriod)

	stop := context.AfterFunc(ctx, h.Port().Stop)
	defer stop()

	err = s.k.Launch(s.cfg.Slice)
	switch {
	case err == nil:
		return ctx.Err()
	case errors.Is(err, hal.ErrCPUHalted) && s.fatal != nil:
		return fmt.Errorf("app: thread %d: %v: %w", s.fatal.Slot, s.fatal.Value, err)
	default:
		return fmt.Errorf("app: %w", err)
	}
}

// frame is the game's periodic event.
func (s *system) frame() {
	var js hal.JoystickState
	if j := s.h.Joystick(); j != nil {
		js = j.Read()
	}
	s.game.Update(js)
	if s.con == nil {
		s.game.Render(s.d)
	}
}

func (s *system) eventLoop() {
	bz := s.h.Buzzer()
	for {
		ev := s.events.Get()
		s.printf("%s", ev)
		if s.con != nil {
			s.con.Println(ev.String())
		}

		switch ev.Kind {
		case pong.EventSpawn:
			if !ev.Spawned {
				continue
			}
			if bz != nil {
				bz.Beep(880, 30*time.Millisecond)
			}
			s.link.Pulse()
		case pong.EventPeerSpawn:
			if ev.Spawned && bz != nil {
				bz.Beep(660, 30*time.Millisecond)
			}
		case pong.EventScore:
			if bz != nil {
				bz.Beep(220, 80*time.Millisecond)
			}
		}
	}
}

func (s *system) presentLoop() {
	for {
		s.k.Sleep(s.cfg.PresentPeriod)
		if err := s.d.Display(); err != nil {
			s.printf("display: %v", err)
		}
	}
}

func (s *system) monitorLoop() {
	for {
		s.k.Sleep(s.cfg.StatsPeriod)
		st := s.k.Stats()
		line := fmt.Sprintf("kernel: ticks=%d switches=%d yields=%d lost=%d score=%d",
			st.Ticks, st.Switches, st.Yields, s.events.Lost(), s.game.Score())
		s.printf("%s", line)
		if s.con != nil {
			s.con.Println(line)
		}
	}
}

func (s *system) printf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}
