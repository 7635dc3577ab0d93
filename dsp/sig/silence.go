package sig

import (
	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Silence renders zeros.
type Silence[S core.Sample] struct{}

// NewSilence returns a silent signal.
func NewSilence[S core.Sample]() *Silence[S] {
	return &Silence[S]{}
}

func (*Silence[S]) SupportsNumChannels(int) bool {
	return true
}

func (*Silence[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (*Silence[S]) Prepare(float64, int, int) error {
	return nil
}

func (*Silence[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	out.Zero()
	return nil
}

func (*Silence[S]) Reset() {}

func (s *Silence[S]) Clone() Signal[S] {
	clone := *s
	return &clone
}

func (*Silence[S]) String() string {
	return "Silence"
}
