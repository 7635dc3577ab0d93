package match

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/window"
)

// SpectralPeakAt checks over the whole signal that the dominant frequency
// of channel 0 lands within a tolerance of a target. The signal is Hann
// windowed and zero padded to a power of two before the FFT.
type SpectralPeakAt[S core.Sample] struct {
	targetHz    float64
	toleranceHz float64

	sampleRateHz float64
	details      Details
}

// NewSpectralPeakAt returns a dominant-frequency matcher.
func NewSpectralPeakAt[S core.Sample](targetHz, toleranceHz float64) (*SpectralPeakAt[S], error) {
	if targetHz <= 0 {
		return nil, fmt.Errorf("%w: target frequency %v Hz", core.ErrValue, targetHz)
	}
	if toleranceHz <= 0 {
		return nil, fmt.Errorf("%w: frequency tolerance %v Hz", core.ErrValue, toleranceHz)
	}

	return &SpectralPeakAt[S]{
		targetHz:    targetHz,
		toleranceHz: toleranceHz,
	}, nil
}

func (m *SpectralPeakAt[S]) Prepare(sampleRateHz float64, _, _ int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRateHz)
	}

	m.sampleRateHz = sampleRateHz

	return nil
}

func (m *SpectralPeakAt[S]) Match(observed *buffer.Buffer[S]) bool {
	if observed.NumChannels() == 0 || observed.NumFrames() == 0 {
		m.details = Details{Description: "no audio to analyze"}
		return false
	}

	dominantHz, err := m.dominantFrequency(observed.Channel(0))
	if err != nil {
		m.details = Details{Description: fmt.Sprintf("spectrum analysis failed: %v", err)}
		return false
	}

	if math.Abs(dominantHz-m.targetHz) <= m.toleranceHz {
		return true
	}

	m.details = Details{
		Description: fmt.Sprintf("dominant frequency %.1f Hz is not within %.1f Hz of %.1f Hz", dominantHz, m.toleranceHz, m.targetHz),
	}

	return false
}

func (*SpectralPeakAt[S]) PerBlock() bool {
	return false
}

func (m *SpectralPeakAt[S]) Reset() {
	m.details = Details{}
}

func (m *SpectralPeakAt[S]) FailureDetails() Details {
	return m.details
}

func (m *SpectralPeakAt[S]) Clone() Matcher[S] {
	clone := *m
	return &clone
}

func (m *SpectralPeakAt[S]) String() string {
	return fmt.Sprintf("SpectralPeakAt(%.1f, %.1f)", m.targetHz, m.toleranceHz)
}

func (m *SpectralPeakAt[S]) dominantFrequency(samples []S) (float64, error) {
	fftSize := nextPowerOfTwo(len(samples))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, err
	}

	coeffs, err := window.New(window.Hann, len(samples))
	if err != nil {
		return 0, err
	}

	windowed := make([]float64, len(samples))
	for i, v := range samples {
		windowed[i] = float64(v)
	}
	if err := window.Apply(windowed, coeffs); err != nil {
		return 0, err
	}

	padded := make([]complex128, fftSize)
	for i, v := range windowed {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return 0, err
	}

	half := fftSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(spectrum[i])
		im[i] = imag(spectrum[i])
	}

	magnitudes := make([]float64, half)
	vecmath.Magnitude(magnitudes, re, im)

	// Skip DC when picking the dominant bin.
	dominantBin := 1
	for i := 2; i < half; i++ {
		if magnitudes[i] > magnitudes[dominantBin] {
			dominantBin = i
		}
	}

	return float64(dominantBin) * m.sampleRateHz / float64(fftSize), nil
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
