//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var windowKeys = [numControls][]ebiten.Key{
	ctlLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	ctlRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	ctlUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	ctlDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
	ctlButton: {ebiten.KeySpace},
	ctlSelect: {ebiten.KeyEnter},
}

// pollKeyboard copies the window's key state onto the joystick. It reports
// whether Escape was just pressed.
func (j *hostJoystick) pollKeyboard() (quit bool) {
	for c, keys := range windowKeys {
		if len(keys) == 0 {
			continue
		}
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		j.hold(control(c), down)
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
