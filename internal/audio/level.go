package audio

import (
	"encoding/binary"
	"math"
)

// SilenceFloor is the normalized peak below which a buffer counts as silent.
const SilenceFloor = 0.01

// Peak returns the highest absolute sample of a PCM16 little-endian buffer,
// normalized to [0,1].
func Peak(pcm []byte) float64 {
	var maxSample float64
	for i := 0; i+1 < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		v := math.Abs(float64(s))
		if v > maxSample {
			maxSample = v
		}
	}
	return maxSample / 32768.0
}

// IsSilent reports whether pcm never rises above SilenceFloor.
func IsSilent(pcm []byte) bool {
	return Peak(pcm) < SilenceFloor
}
