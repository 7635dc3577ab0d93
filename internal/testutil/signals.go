package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
)

// SineBuffer generates a deterministic sine wave, duplicated across
// channels.
func SineBuffer(freqHz, sampleRate, amplitude float64, channels, frames int) *buffer.Buffer[float64] {
	out := buffer.New[float64](channels, frames)
	step := 2 * math.Pi * freqHz / sampleRate
	for channel := 0; channel < channels; channel++ {
		dst := out.Channel(channel)
		for i := range dst {
			dst[i] = amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// NoiseBuffer generates white noise with a fixed seed for reproducibility.
// Channels carry independent values drawn from the same stream.
func NoiseBuffer(seed int64, amplitude float64, channels, frames int) *buffer.Buffer[float64] {
	out := buffer.New[float64](channels, frames)
	rng := rand.New(rand.NewSource(seed))
	for frame := 0; frame < frames; frame++ {
		for channel := 0; channel < channels; channel++ {
			out.Channel(channel)[frame] = (rng.Float64()*2 - 1) * amplitude
		}
	}
	return out
}

// ImpulseBuffer generates a mono unit impulse at the given frame.
func ImpulseBuffer(frames, pos int) *buffer.Buffer[float64] {
	out := buffer.New[float64](1, frames)
	if pos >= 0 && pos < frames {
		out.Channel(0)[pos] = 1
	}
	return out
}

// DCBuffer generates a constant-valued mono signal.
func DCBuffer(value float64, frames int) *buffer.Buffer[float64] {
	out := buffer.New[float64](1, frames)
	dst := out.Channel(0)
	for i := range dst {
		dst[i] = value
	}
	return out
}
