package sig

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// SweepType determines how the sweep moves between its frequencies.
type SweepType int

const (
	// SweepLog raises frequency geometrically, for a pink-noise-like
	// spectrum.
	SweepLog SweepType = iota

	// SweepLinear raises frequency linearly, for a white-noise-like
	// spectrum.
	SweepLinear
)

const (
	defaultSweepDurationSeconds = 1.0
	defaultSweepStartHz         = 20.0
	defaultSweepEndHz           = 20e3
)

// SweepOption mutates sine sweep construction parameters.
type SweepOption func(*sweepConfig) error

type sweepConfig struct {
	durationSeconds float64
	startHz         float64
	endHz           float64
	sweepType       SweepType
	loop            bool
	phaseRadians    float64
}

// WithSweepDuration sets the sweep duration in seconds. Zero renders
// silence permanently.
func WithSweepDuration(seconds float64) SweepOption {
	return func(cfg *sweepConfig) error {
		if seconds < 0 {
			return fmt.Errorf("%w: sweep duration %v s", core.ErrValue, seconds)
		}
		cfg.durationSeconds = seconds
		return nil
	}
}

// WithSweepStartFrequency sets the start frequency in Hz.
func WithSweepStartFrequency(freqHz float64) SweepOption {
	return func(cfg *sweepConfig) error {
		if freqHz <= 0 {
			return fmt.Errorf("%w: sweep start frequency %v Hz", core.ErrValue, freqHz)
		}
		cfg.startHz = freqHz
		return nil
	}
}

// WithSweepEndFrequency sets the end frequency in Hz.
func WithSweepEndFrequency(freqHz float64) SweepOption {
	return func(cfg *sweepConfig) error {
		if freqHz <= 0 {
			return fmt.Errorf("%w: sweep end frequency %v Hz", core.ErrValue, freqHz)
		}
		cfg.endHz = freqHz
		return nil
	}
}

// WithSweepType selects linear or logarithmic frequency movement.
func WithSweepType(sweepType SweepType) SweepOption {
	return func(cfg *sweepConfig) error {
		cfg.sweepType = sweepType
		return nil
	}
}

// WithSweepLoop makes the sweep reverse direction at each boundary instead
// of going silent.
func WithSweepLoop() SweepOption {
	return func(cfg *sweepConfig) error {
		cfg.loop = true
		return nil
	}
}

// WithSweepPhase sets the initial phase in radians.
func WithSweepPhase(phaseRadians float64) SweepOption {
	return func(cfg *sweepConfig) error {
		cfg.phaseRadians = phaseRadians
		return nil
	}
}

// SineSweep renders a unity-gain sine whose frequency moves from start to
// end over the configured duration. Without looping, the signal is silent
// after the sweep ends; with looping it ping-pongs between the two
// frequencies indefinitely.
type SineSweep[S core.Sample] struct {
	cfg          sweepConfig
	initialPhase float64

	sampleRateHz   float64
	durationFrames int
	posFrames      int
	phase          float64
	silent         bool
	reversed       bool
}

// NewSineSweep returns a sweep configured by options; the defaults run
// 20 Hz to 20 kHz logarithmically over one second without looping.
func NewSineSweep[S core.Sample](opts ...SweepOption) (*SineSweep[S], error) {
	cfg := sweepConfig{
		durationSeconds: defaultSweepDurationSeconds,
		startHz:         defaultSweepStartHz,
		endHz:           defaultSweepEndHz,
		sweepType:       SweepLog,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	phase := core.WrapPhase(cfg.phaseRadians)

	return &SineSweep[S]{
		cfg:          cfg,
		initialPhase: phase,
		phase:        phase,
		silent:       cfg.durationSeconds == 0,
	}, nil
}

func (*SineSweep[S]) SupportsNumChannels(int) bool {
	return true
}

func (s *SineSweep[S]) SupportsSampleRate(rateHz float64) bool {
	return rateHz > 0
}

func (s *SineSweep[S]) Prepare(sampleRateHz float64, _, _ int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRateHz)
	}

	s.sampleRateHz = sampleRateHz
	s.durationFrames = core.DurationToFrames(s.cfg.durationSeconds, sampleRateHz)

	return nil
}

func (s *SineSweep[S]) RenderNextBlock(out *buffer.Buffer[S]) error {
	if s.silent {
		out.Zero()
		return nil
	}

	numFrames := out.NumFrames()
	for frame := 0; frame < numFrames; frame++ {
		value := S(math.Sin(s.phase))
		for channel := 0; channel < out.NumChannels(); channel++ {
			out.Channel(channel)[frame] = value
		}

		s.posFrames++
		if s.posFrames == s.durationFrames {
			s.posFrames = 0
			if !s.cfg.loop {
				fillSilence(out, frame+1)
				s.silent = true
				return nil
			}
			s.reversed = !s.reversed
		}

		frequencyHz := s.frequencyAtFrame(s.posFrames)
		s.phase = core.WrapPhase(s.phase + core.TwoPi*frequencyHz/s.sampleRateHz)
	}

	return nil
}

func (s *SineSweep[S]) Reset() {
	s.posFrames = 0
	s.phase = s.initialPhase
	s.silent = s.cfg.durationSeconds == 0
	s.reversed = false
}

func (s *SineSweep[S]) Clone() Signal[S] {
	clone := *s
	return &clone
}

func (s *SineSweep[S]) String() string {
	kind := "log"
	if s.cfg.sweepType == SweepLinear {
		kind = "linear"
	}
	loop := "no loop"
	if s.cfg.loop {
		loop = "loop"
	}

	return fmt.Sprintf("SineSweep(%.3f s, %.1f Hz - %.1f Hz, %s, %s)", s.cfg.durationSeconds, s.cfg.startHz, s.cfg.endHz, kind, loop)
}

func (s *SineSweep[S]) frequencyAtFrame(offsetFrames int) float64 {
	if s.cfg.startHz == s.cfg.endHz {
		return s.cfg.startHz
	}

	portion := float64(offsetFrames) / s.sampleRateHz / s.cfg.durationSeconds
	if s.reversed {
		portion = 1 - portion
	}

	if s.cfg.sweepType == SweepLinear {
		return s.cfg.startHz + (s.cfg.endHz-s.cfg.startHz)*portion
	}

	return s.cfg.startHz * math.Pow(s.cfg.endHz/s.cfg.startHz, portion)
}

func fillSilence[S core.Sample](out *buffer.Buffer[S], fromFrame int) {
	for channel := 0; channel < out.NumChannels(); channel++ {
		dst := out.Channel(channel)
		for i := fromFrame; i < len(dst); i++ {
			dst[i] = 0
		}
	}
}
