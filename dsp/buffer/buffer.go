package buffer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Buffer holds multi-channel audio with channel-major contiguous storage.
// The channel count is fixed at construction; the frame count may change
// through Resize and Append. Channel views returned by Channel are
// invalidated by any mutating operation that changes the frame count.
type Buffer[S core.Sample] struct {
	numChannels int
	numFrames   int
	samples     []S
}

// New returns a zero-filled Buffer with the given channel and frame counts.
// Negative counts are treated as zero.
func New[S core.Sample](numChannels, numFrames int) *Buffer[S] {
	if numChannels < 0 {
		numChannels = 0
	}
	if numFrames < 0 {
		numFrames = 0
	}

	return &Buffer[S]{
		numChannels: numChannels,
		numFrames:   numFrames,
		samples:     make([]S, numChannels*numFrames),
	}
}

// EmptyLike returns a zero-filled Buffer with the same shape as other.
func EmptyLike[S core.Sample](other *Buffer[S]) *Buffer[S] {
	return New[S](other.numChannels, other.numFrames)
}

// NumChannels returns the channel count.
func (b *Buffer[S]) NumChannels() int {
	return b.numChannels
}

// NumFrames returns the current frame count.
func (b *Buffer[S]) NumFrames() int {
	return b.numFrames
}

// Channel returns the sample slice for the given channel. The view aliases
// the buffer storage; it is invalidated by Resize and Append.
func (b *Buffer[S]) Channel(channel int) []S {
	start := channel * b.numFrames
	return b.samples[start : start+b.numFrames]
}

// Resize sets the frame count to numFrames, reusing capacity when possible.
// Existing per-channel data is not preserved; the buffer is zeroed.
func (b *Buffer[S]) Resize(numFrames int) {
	if numFrames < 0 {
		numFrames = 0
	}

	total := b.numChannels * numFrames
	if total <= cap(b.samples) {
		b.samples = b.samples[:total]
	} else {
		b.samples = make([]S, total)
	}

	b.numFrames = numFrames
	b.Zero()
}

// Zero sets every sample to 0.
func (b *Buffer[S]) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// CopyFrom copies the contents of other into b. The shapes must match.
func (b *Buffer[S]) CopyFrom(other *Buffer[S]) error {
	if other.numChannels != b.numChannels {
		return fmt.Errorf("%w: copy from %d channels into %d", core.ErrChannelLayout, other.numChannels, b.numChannels)
	}
	if other.numFrames != b.numFrames {
		return fmt.Errorf("%w: copy from %d frames into %d", core.ErrSize, other.numFrames, b.numFrames)
	}

	copy(b.samples, other.samples)

	return nil
}

// Append grows b by other's frames, copying other's samples after the
// existing ones per channel. The channel counts must match.
func (b *Buffer[S]) Append(other *Buffer[S]) error {
	if other.numChannels != b.numChannels {
		return fmt.Errorf("%w: append %d channels onto %d", core.ErrChannelLayout, other.numChannels, b.numChannels)
	}

	if other.numFrames == 0 {
		return nil
	}

	combinedFrames := b.numFrames + other.numFrames
	combined := make([]S, b.numChannels*combinedFrames)

	for channel := 0; channel < b.numChannels; channel++ {
		dst := combined[channel*combinedFrames:]
		copy(dst, b.Channel(channel))
		copy(dst[b.numFrames:], other.Channel(channel))
	}

	b.samples = combined
	b.numFrames = combinedFrames

	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[S]) Clone() *Buffer[S] {
	clone := &Buffer[S]{
		numChannels: b.numChannels,
		numFrames:   b.numFrames,
		samples:     make([]S, len(b.samples)),
	}
	copy(clone.samples, b.samples)

	return clone
}

// Peak returns the largest absolute sample value across all channels
// together with its channel and frame. An empty buffer reports a zero peak
// at channel 0, frame 0.
func (b *Buffer[S]) Peak() (peak float64, channel, frame int) {
	for ch := 0; ch < b.numChannels; ch++ {
		chPeak, chFrame := maxAbs(b.Channel(ch))
		if chPeak > peak {
			peak = chPeak
			channel = ch
			frame = chFrame
		}
	}

	return peak, channel, frame
}

// PeakRange returns the largest absolute sample value of one channel in the
// frame range [from, to).
func (b *Buffer[S]) PeakRange(channel, from, to int) (float64, error) {
	if channel < 0 || channel >= b.numChannels {
		return 0, fmt.Errorf("%w: channel %d of %d", core.ErrSize, channel, b.numChannels)
	}
	if from < 0 || to > b.numFrames || from > to {
		return 0, fmt.Errorf("%w: frame range [%d, %d) of %d", core.ErrSize, from, to, b.numFrames)
	}

	peak, _ := maxAbs(b.Channel(channel)[from:to])

	return peak, nil
}

// maxAbs is a scalar reduction; the vectorized block-math package offers no
// max-abs primitive.
func maxAbs[S core.Sample](samples []S) (peak float64, frame int) {
	for i, v := range samples {
		abs := math.Abs(float64(v))
		if abs > peak {
			peak = abs
			frame = i
		}
	}

	return peak, frame
}
