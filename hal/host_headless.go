//go:build !tinygo

package hal

import (
	"context"
	"os"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// TTY reads joystick keys from the controlling terminal.
	TTY bool
}

// RunHeadless runs the OS without opening a window. It returns when run does.
func RunHeadless(ctx context.Context, opts Options, run func(context.Context, HAL) error, cfg HeadlessConfig) error {
	h, err := newHostHAL(opts, os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.TTY {
		if err := startTTYJoystick(ctx, h.joy, cancel); err != nil {
			h.logger.WriteLineString("tty: " + err.Error() + " (joystick disabled)")
		}
	}
	return run(ctx, h)
}
