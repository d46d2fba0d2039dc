//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const buzzerSampleRate = 44100

// hostBuzzer renders square tones through Ebiten's audio package. The
// context is created on the first Beep so headless runs never open a device.
type hostBuzzer struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player
	volume float64
}

func newHostBuzzer() Buzzer {
	return &hostBuzzer{volume: 0.2}
}

func (b *hostBuzzer) Beep(hz int, d time.Duration) {
	if hz <= 0 || d <= 0 {
		return
	}
	pcm := squareWave(hz, d, buzzerSampleRate)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx == nil {
		b.ctx = audio.CurrentContext()
		if b.ctx == nil {
			b.ctx = audio.NewContext(buzzerSampleRate)
		}
	}
	if b.player != nil {
		_ = b.player.Close()
	}
	b.player = b.ctx.NewPlayerFromBytes(pcm)
	b.player.SetVolume(b.volume)
	b.player.Play()
}
