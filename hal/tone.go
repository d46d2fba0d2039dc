package hal

import "time"

// squareWave renders a 16-bit little-endian stereo square wave, the format
// Ebiten's audio players expect.
func squareWave(hz int, d time.Duration, rate int) []byte {
	n := int(int64(rate) * int64(d) / int64(time.Second))
	half := rate / (2 * hz)
	if half < 1 {
		half = 1
	}
	const amp = 12000

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		s := int16(amp)
		if (i/half)%2 == 1 {
			s = -amp
		}
		j := i * 4
		out[j+0] = byte(s)
		out[j+1] = byte(uint16(s) >> 8)
		out[j+2] = byte(s)
		out[j+3] = byte(uint16(s) >> 8)
	}
	return out
}
