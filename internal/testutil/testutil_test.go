package testutil

import (
	"math"
	"testing"
)

func TestSineBufferValues(t *testing.T) {
	buf := SineBuffer(441, 44100, 0.5, 2, 100)
	step := 2 * math.Pi * 441 / 44100
	for channel := 0; channel < 2; channel++ {
		for i, v := range buf.Channel(channel) {
			want := 0.5 * math.Sin(step*float64(i))
			if math.Abs(v-want) > 1e-12 {
				t.Fatalf("channel %d sample %d = %v, want %v", channel, i, v, want)
			}
		}
	}
}

func TestNoiseBufferDeterministic(t *testing.T) {
	a := NoiseBuffer(7, 1, 1, 64)
	b := NoiseBuffer(7, 1, 1, 64)
	RequireSliceNearlyEqual(t, a.Channel(0), b.Channel(0), 0)
	RequireFinite(t, a.Channel(0))

	for _, v := range a.Channel(0) {
		if v < -1 || v > 1 {
			t.Fatalf("noise sample %v out of range", v)
		}
	}
}

func TestImpulseBuffer(t *testing.T) {
	buf := ImpulseBuffer(8, 3)
	for i, v := range buf.Channel(0) {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}

	silent := ImpulseBuffer(4, 9)
	for i, v := range silent.Channel(0) {
		if v != 0 {
			t.Fatalf("out-of-range impulse wrote sample %d = %v", i, v)
		}
	}
}

func TestMaxAbsDiff(t *testing.T) {
	got, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if got != 1 {
		t.Fatalf("MaxAbsDiff() = %v, want 1", got)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("MaxAbsDiff() expected length error")
	}
}

func TestRequireBufferNearlyEqual(t *testing.T) {
	a := DCBuffer(0.25, 16)
	b := DCBuffer(0.25, 16)
	RequireBufferNearlyEqual(t, a, b, 0)
}
