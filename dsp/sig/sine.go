package sig

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// SineWave renders a fixed-frequency sine at unity gain on every channel.
type SineWave[S core.Sample] struct {
	frequencyHz  float64
	initialPhase float64

	phase        float64
	sampleRateHz float64
}

// NewSineWave returns a sine generator. The phase is wrapped to [0, 2*pi).
func NewSineWave[S core.Sample](frequencyHz, phaseRadians float64) (*SineWave[S], error) {
	if frequencyHz <= 0 {
		return nil, fmt.Errorf("%w: frequency %v Hz", core.ErrValue, frequencyHz)
	}

	phase := core.WrapPhase(phaseRadians)

	return &SineWave[S]{
		frequencyHz:  frequencyHz,
		initialPhase: phase,
		phase:        phase,
	}, nil
}

func (*SineWave[S]) SupportsNumChannels(int) bool {
	return true
}

func (s *SineWave[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (s *SineWave[S]) Prepare(sampleRateHz float64, _, _ int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRateHz)
	}

	s.sampleRateHz = sampleRateHz

	return nil
}

func (s *SineWave[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	phaseIncrement := core.TwoPi * s.frequencyHz / s.sampleRateHz

	for frame := 0; frame < out.NumFrames(); frame++ {
		value := S(math.Sin(s.phase))
		for channel := 0; channel < out.NumChannels(); channel++ {
			out.Channel(channel)[frame] = value
		}

		s.phase += phaseIncrement
	}

	return nil
}

func (s *SineWave[S]) Reset() {
	s.phase = s.initialPhase
}

func (s *SineWave[S]) Clone() Signal[S] {
	clone := *s
	return &clone
}

func (s *SineWave[S]) String() string {
	return fmt.Sprintf("SineWave(%.1f Hz, %.3f rad)", s.frequencyHz, s.initialPhase)
}
