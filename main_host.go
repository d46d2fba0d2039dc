//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"pongos/app"
	"pongos/hal"

	"github.com/xyproto/env/v2"
)

func main() {
	cfg := app.DefaultConfig()
	var hcfg hal.HeadlessConfig
	var opts hal.Options
	var link string
	var ticks int

	sliceMs := env.Int("PONGOS_SLICE_MS", int(cfg.Slice/time.Millisecond))
	flag.IntVar(&sliceMs, "slice", sliceMs, "Time slice in milliseconds.")
	flag.BoolVar(&hcfg.Enabled, "headless", env.Bool("PONGOS_HEADLESS"), "Run without a window.")
	flag.BoolVar(&hcfg.TTY, "tty", env.Bool("PONGOS_TTY"), "Read the joystick from the terminal in headless mode.")
	flag.IntVar(&ticks, "ticks", env.Int("PONGOS_TICKS", 0), "Stop after N ticks (0 = run forever).")
	flag.StringVar(&link, "link", env.Str("PONGOS_LINK", "idle"), "Link wiring: idle, loopback or sim.")
	flag.BoolVar(&cfg.Console, "console", env.Bool("PONGOS_CONSOLE"), "Show the event trace instead of the playfield.")
	flag.Parse()

	if sliceMs <= 0 || ticks < 0 {
		fmt.Fprintln(os.Stderr, "slice must be positive and ticks non-negative")
		os.Exit(2)
	}
	cfg.Slice = time.Duration(sliceMs) * time.Millisecond
	opts.TickLimit = uint64(ticks)
	mode, err := hal.ParseLinkMode(link)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts.Link = mode

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := func(ctx context.Context, h hal.HAL) error {
		return app.Run(ctx, h, cfg)
	}
	if hcfg.Enabled {
		err = hal.RunHeadless(ctx, opts, run, hcfg)
	} else {
		err = hal.RunWindow(ctx, opts, run)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
