//go:build !tinygo

package hal

import (
	"context"

	"github.com/mattn/go-tty"
)

// ttyDecoder turns terminal runes into joystick controls. It understands
// the ANSI arrow sequences ESC [ A..D.
type ttyDecoder struct {
	esc int
}

func (d *ttyDecoder) feed(r rune) control {
	switch d.esc {
	case 1:
		if r == '[' || r == 'O' {
			d.esc = 2
			return ctlNone
		}
		d.esc = 0
	case 2:
		d.esc = 0
		switch r {
		case 'A':
			return ctlUp
		case 'B':
			return ctlDown
		case 'C':
			return ctlRight
		case 'D':
			return ctlLeft
		}
		return ctlNone
	}

	switch r {
	case 0x1b:
		d.esc = 1
	case 'a', 'A', 'h':
		return ctlLeft
	case 'd', 'D', 'l':
		return ctlRight
	case 'w', 'W', 'k':
		return ctlUp
	case 's', 'S', 'j':
		return ctlDown
	case ' ':
		return ctlButton
	case '\r', '\n':
		return ctlSelect
	case 'q', 0x03:
		return ctlQuit
	}
	return ctlNone
}

// startTTYJoystick feeds terminal key presses into j until ctx ends. quit is
// called on q or Ctrl-C, since raw mode swallows SIGINT.
func startTTYJoystick(ctx context.Context, j *hostJoystick, quit func()) error {
	t, err := tty.Open()
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		t.Close()
	}()

	go func() {
		var dec ttyDecoder
		for {
			r, err := t.ReadRune()
			if err != nil {
				return
			}
			switch c := dec.feed(r); c {
			case ctlNone:
			case ctlQuit:
				quit()
				return
			default:
				j.pulse(c)
			}
		}
	}()
	return nil
}
