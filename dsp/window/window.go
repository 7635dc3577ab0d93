package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	Rectangular Type = iota
	Hann
	Hamming
	Blackman
)

func (t Type) String() string {
	switch t {
	case Rectangular:
		return "Rectangular"
	case Hann:
		return "Hann"
	case Hamming:
		return "Hamming"
	case Blackman:
		return "Blackman"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// New returns n symmetric window coefficients.
func New(t Type, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: window length %d", core.ErrValue, n)
	}

	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs, nil
	}

	span := float64(n - 1)
	for i := range coeffs {
		x := core.TwoPi * float64(i) / span
		switch t {
		case Rectangular:
			coeffs[i] = 1
		case Hann:
			coeffs[i] = 0.5 - 0.5*math.Cos(x)
		case Hamming:
			coeffs[i] = 0.54 - 0.46*math.Cos(x)
		case Blackman:
			coeffs[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		default:
			return nil, fmt.Errorf("%w: window type %v", core.ErrUnsupported, t)
		}
	}

	return coeffs, nil
}

// Apply multiplies coefficients onto samples in place.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d samples, %d coefficients", core.ErrSize, len(samples), len(coeffs))
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
