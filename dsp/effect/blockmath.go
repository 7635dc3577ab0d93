package effect

import (
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// scaleBlock writes dst[i] = src[i] * gain, taking the vectorized path for
// float64 slices.
func scaleBlock[S core.Sample](dst, src []S, gain float64) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.ScaleBlock(d, any(src).([]float64), gain)
		return
	}

	for i := range src {
		dst[i] = S(float64(src[i]) * gain)
	}
}

// mulBlock writes dst[i] = src[i] * values[i], taking the vectorized path
// for float64 slices.
func mulBlock[S core.Sample](dst, src []S, values []float64) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.MulBlock(d, any(src).([]float64), values)
		return
	}

	for i := range src {
		dst[i] = S(float64(src[i]) * values[i])
	}
}
