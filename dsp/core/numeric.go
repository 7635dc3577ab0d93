package core

import "math"

// Sample is the constraint for audio sample types. Components are generic
// over Sample so that per-sample math is monomorphized for float32 and
// float64 rather than dispatched at runtime.
type Sample interface {
	~float32 | ~float64
}

const (
	// TwoPi is one full phase revolution in radians.
	TwoPi = 2 * math.Pi

	defaultEpsilon = 1e-12
)

// Clamp limits value to the inclusive range [min, max].
func Clamp[S Sample](value, min, max S) S {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps (absolute).
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	return math.Abs(a-b) <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// WrapPhase folds a phase value into the [0, 2*pi) range.
func WrapPhase(phaseRadians float64) float64 {
	wrapped := math.Mod(phaseRadians, TwoPi)
	if wrapped < 0 {
		wrapped += TwoPi
	}

	return wrapped
}

// DurationToFrames converts a duration in seconds to a whole frame count at
// the given sample rate, rounding to the nearest frame.
func DurationToFrames(durationSeconds, sampleRateHz float64) int {
	frames := math.Round(durationSeconds * sampleRateHz)
	if frames <= 0 {
		return 0
	}

	return int(frames)
}
